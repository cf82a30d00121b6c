package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// EntityType тип записи в объединении Entity
type EntityType string

// EntityType константы для типов записей
const (
	EntityTypePatient  EntityType = "patient"
	EntityTypeCarePlan EntityType = "carePlan"
	EntityTypeContact  EntityType = "contact"
	EntityTypeTask     EntityType = "task"
	EntityTypeOutcome  EntityType = "outcome"
)

// EntityTypes все поддерживаемые типы в порядке вывода
var EntityTypes = []EntityType{
	EntityTypePatient,
	EntityTypeCarePlan,
	EntityTypeContact,
	EntityTypeTask,
	EntityTypeOutcome,
}

// ParseEntityType разбирает тип записи из строки (регистр имеет значение для carePlan).
func ParseEntityType(s string) (EntityType, error) {
	for _, t := range EntityTypes {
		if string(t) == s {
			return t, nil
		}
	}
	switch s {
	case "careplan", "care-plan", "plan":
		return EntityTypeCarePlan, nil
	}
	return "", fmt.Errorf("unknown entity type: %q", s)
}

// ErrInvalidEntity запись не содержит полезной нагрузки нужного типа
var ErrInvalidEntity = errors.New("invalid entity")

// Entity объединение версионируемых записей: ровно одно поле заполнено
// в соответствии с Type.
type Entity struct {
	Patient  *Patient  `json:"-"`
	CarePlan *CarePlan `json:"-"`
	Contact  *Contact  `json:"-"`
	Task     *Task     `json:"-"`
	Outcome  *Outcome  `json:"-"`
	Type     EntityType
}

// NewPatientEntity оборачивает пациента
func NewPatientEntity(p *Patient) Entity { return Entity{Type: EntityTypePatient, Patient: p} }

// NewCarePlanEntity оборачивает план
func NewCarePlanEntity(p *CarePlan) Entity { return Entity{Type: EntityTypeCarePlan, CarePlan: p} }

// NewContactEntity оборачивает контакт
func NewContactEntity(c *Contact) Entity { return Entity{Type: EntityTypeContact, Contact: c} }

// NewTaskEntity оборачивает задачу
func NewTaskEntity(t *Task) Entity { return Entity{Type: EntityTypeTask, Task: t} }

// NewOutcomeEntity оборачивает результат
func NewOutcomeEntity(o *Outcome) Entity { return Entity{Type: EntityTypeOutcome, Outcome: o} }

// Header возвращает указатель на общий заголовок версии.
// nil если полезная нагрузка не соответствует типу.
func (e Entity) Header() *Versioned {
	switch e.Type {
	case EntityTypePatient:
		if e.Patient != nil {
			return &e.Patient.Versioned
		}
	case EntityTypeCarePlan:
		if e.CarePlan != nil {
			return &e.CarePlan.Versioned
		}
	case EntityTypeContact:
		if e.Contact != nil {
			return &e.Contact.Versioned
		}
	case EntityTypeTask:
		if e.Task != nil {
			return &e.Task.Versioned
		}
	case EntityTypeOutcome:
		if e.Outcome != nil {
			return &e.Outcome.Versioned
		}
	}
	return nil
}

// Validate проверяет, что Type и полезная нагрузка согласованы
func (e Entity) Validate() error {
	if e.Header() == nil {
		return fmt.Errorf("%w: no %q payload", ErrInvalidEntity, e.Type)
	}
	return nil
}

// Key логическая идентичность записи: тип и ID.
func (e Entity) Key() string {
	return EntityKey(e.Type, e.Header().ID)
}

// EntityKey строит ключ сущности из типа и ID.
func EntityKey(t EntityType, id string) string {
	return string(t) + "/" + id
}

// Title человекочитаемое описание для CLI
func (e Entity) Title() string {
	switch e.Type {
	case EntityTypePatient:
		return e.Patient.Name.String()
	case EntityTypeCarePlan:
		return e.CarePlan.Title
	case EntityTypeContact:
		return e.Contact.Name.String()
	case EntityTypeTask:
		return e.Task.Title
	case EntityTypeOutcome:
		if len(e.Outcome.Values) > 0 {
			return e.Outcome.Values[0].Value
		}
	}
	return ""
}

// Clone создает глубокую копию записи
func (e Entity) Clone() Entity {
	c := Entity{Type: e.Type}

	switch {
	case e.Patient != nil:
		p := *e.Patient
		p.Versioned = e.Patient.Versioned.clone()
		p.Birthday = cloneTimePtr(e.Patient.Birthday)
		p.Allergies = cloneSlice(e.Patient.Allergies)
		c.Patient = &p
	case e.CarePlan != nil:
		p := *e.CarePlan
		p.Versioned = e.CarePlan.Versioned.clone()
		p.PatientUUID = cloneUUIDPtr(e.CarePlan.PatientUUID)
		c.CarePlan = &p
	case e.Contact != nil:
		ct := *e.Contact
		ct.Versioned = e.Contact.Versioned.clone()
		ct.CarePlanUUID = cloneUUIDPtr(e.Contact.CarePlanUUID)
		ct.EmailAddresses = cloneSlice(e.Contact.EmailAddresses)
		ct.PhoneNumbers = cloneSlice(e.Contact.PhoneNumbers)
		c.Contact = &ct
	case e.Task != nil:
		t := *e.Task
		t.Versioned = e.Task.Versioned.clone()
		t.CarePlanUUID = cloneUUIDPtr(e.Task.CarePlanUUID)
		t.Schedule.Elements = cloneSlice(e.Task.Schedule.Elements)
		for i := range t.Schedule.Elements {
			t.Schedule.Elements[i].End = cloneTimePtr(t.Schedule.Elements[i].End)
		}
		c.Task = &t
	case e.Outcome != nil:
		o := *e.Outcome
		o.Versioned = e.Outcome.Versioned.clone()
		o.Values = cloneSlice(e.Outcome.Values)
		c.Outcome = &o
	}

	return c
}

type wireEntity struct {
	Type   EntityType      `json:"type"`
	Object json.RawMessage `json:"object"`
}

// MarshalJSON кодирует запись как {"type":...,"object":...}
func (e Entity) MarshalJSON() ([]byte, error) {
	var (
		object []byte
		err    error
	)

	switch e.Type {
	case EntityTypePatient:
		object, err = json.Marshal(e.Patient)
	case EntityTypeCarePlan:
		object, err = json.Marshal(e.CarePlan)
	case EntityTypeContact:
		object, err = json.Marshal(e.Contact)
	case EntityTypeTask:
		object, err = json.Marshal(e.Task)
	case EntityTypeOutcome:
		object, err = json.Marshal(e.Outcome)
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidEntity, e.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", e.Type, err)
	}

	return json.Marshal(wireEntity{Type: e.Type, Object: object})
}

// UnmarshalJSON декодирует запись по полю type
func (e *Entity) UnmarshalJSON(data []byte) error {
	var wire wireEntity
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("failed to decode entity: %w", err)
	}

	decoded := Entity{Type: wire.Type}
	var target any

	switch wire.Type {
	case EntityTypePatient:
		decoded.Patient = &Patient{}
		target = decoded.Patient
	case EntityTypeCarePlan:
		decoded.CarePlan = &CarePlan{}
		target = decoded.CarePlan
	case EntityTypeContact:
		decoded.Contact = &Contact{}
		target = decoded.Contact
	case EntityTypeTask:
		decoded.Task = &Task{}
		target = decoded.Task
	case EntityTypeOutcome:
		decoded.Outcome = &Outcome{}
		target = decoded.Outcome
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidEntity, wire.Type)
	}

	if err := json.Unmarshal(wire.Object, target); err != nil {
		return fmt.Errorf("failed to decode %s: %w", wire.Type, err)
	}

	*e = decoded
	return nil
}
