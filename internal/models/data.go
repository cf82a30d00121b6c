package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Note заметка, прикрепленная к записи.
type Note struct {
	Author  string `json:"author,omitempty"`  // Author автор заметки
	Title   string `json:"title,omitempty"`   // Title заголовок
	Content string `json:"content,omitempty"` // Content текст заметки
}

// PersonName имя человека для пациентов и контактов.
type PersonName struct {
	GivenName  string `json:"givenName,omitempty"`  // GivenName имя
	FamilyName string `json:"familyName,omitempty"` // FamilyName фамилия
}

// String возвращает "Имя Фамилия" без лишних пробелов
func (n PersonName) String() string {
	switch {
	case n.GivenName == "":
		return n.FamilyName
	case n.FamilyName == "":
		return n.GivenName
	default:
		return n.GivenName + " " + n.FamilyName
	}
}

// Versioned общий заголовок всех версионируемых записей.
// Каждое изменение записи создает новую версию с новым UUID,
// ID остается неизменным на протяжении всей истории.
type Versioned struct {
	EffectiveDate        time.Time         `json:"effectiveDate"`                  // EffectiveDate с какого момента версия действует
	CreatedDate          time.Time         `json:"createdDate"`                    // CreatedDate время создания первой версии, используется как tie-breaker
	UpdatedDate          time.Time         `json:"updatedDate"`                    // UpdatedDate время создания этой версии
	DeletedDate          *time.Time        `json:"deletedDate,omitempty"`          // DeletedDate заполнено у версии-надгробия
	UserInfo             map[string]string `json:"userInfo,omitempty"`             // UserInfo произвольные поля клиента
	ID                   string            `json:"id"`                             // ID логический идентификатор записи
	GroupIdentifier      string            `json:"groupIdentifier,omitempty"`      // GroupIdentifier группа для фильтрации
	RemoteID             string            `json:"remoteID,omitempty"`             // RemoteID идентификатор во внешней системе
	Source               string            `json:"source,omitempty"`               // Source источник данных
	Asset                string            `json:"asset,omitempty"`                // Asset имя картинки/ресурса
	Timezone             string            `json:"timezone,omitempty"`             // Timezone IANA имя часового пояса
	Tags                 []string          `json:"tags,omitempty"`                 // Tags теги для поиска и группировки
	Notes                []Note            `json:"notes,omitempty"`                // Notes заметки
	PreviousVersionUUIDs []uuid.UUID       `json:"previousVersionUUIDs,omitempty"` // PreviousVersionUUIDs версии, которые заменяет эта
	UUID                 uuid.UUID         `json:"uuid"`                           // UUID идентификатор этой версии
}

// IsDeleted true для версии-надгробия
func (v *Versioned) IsDeleted() bool {
	return v.DeletedDate != nil
}

func (v Versioned) clone() Versioned {
	c := v
	if v.DeletedDate != nil {
		d := *v.DeletedDate
		c.DeletedDate = &d
	}
	if v.UserInfo != nil {
		c.UserInfo = make(map[string]string, len(v.UserInfo))
		for k, val := range v.UserInfo {
			c.UserInfo[k] = val
		}
	}
	c.Tags = cloneSlice(v.Tags)
	c.Notes = cloneSlice(v.Notes)
	c.PreviousVersionUUIDs = cloneSlice(v.PreviousVersionUUIDs)
	return c
}

// Patient пациент.
type Patient struct {
	Birthday  *time.Time `json:"birthday,omitempty"`  // Birthday дата рождения
	Name      PersonName `json:"name"`                // Name имя пациента
	Sex       string     `json:"sex,omitempty"`       // Sex пол
	Allergies []string   `json:"allergies,omitempty"` // Allergies аллергии
	Versioned
}

// CarePlan план лечения пациента.
type CarePlan struct {
	PatientUUID *uuid.UUID `json:"patientUUID,omitempty"` // PatientUUID версия пациента, к которому относится план
	Title       string     `json:"title"`                 // Title название плана
	Versioned
}

// Contact контакт лечащей команды.
type Contact struct {
	CarePlanUUID   *uuid.UUID `json:"carePlanUUID,omitempty"`   // CarePlanUUID план, к которому относится контакт
	Name           PersonName `json:"name"`                     // Name имя контакта
	Organization   string     `json:"organization,omitempty"`   // Organization организация
	Role           string     `json:"role,omitempty"`           // Role роль (например, "врач")
	Title          string     `json:"title,omitempty"`          // Title должность
	EmailAddresses []string   `json:"emailAddresses,omitempty"` // EmailAddresses email адреса
	PhoneNumbers   []string   `json:"phoneNumbers,omitempty"`   // PhoneNumbers телефоны
	Versioned
}

// ScheduleElement элемент расписания задачи.
// Вычисление вхождений расписания не входит в задачи синхронизации,
// расписание хранится как данные.
type ScheduleElement struct {
	Start        time.Time  `json:"start"`                  // Start начало
	End          *time.Time `json:"end,omitempty"`          // End конец, nil для бессрочного
	Text         string     `json:"text,omitempty"`         // Text описание
	IntervalDays int        `json:"intervalDays,omitempty"` // IntervalDays период повторения в днях
	Duration     int64      `json:"duration,omitempty"`     // Duration длительность в секундах
}

// Schedule расписание задачи.
type Schedule struct {
	Elements []ScheduleElement `json:"elements"`
}

// DailyAt ежедневное расписание с заданного момента.
func DailyAt(start time.Time) Schedule {
	return Schedule{Elements: []ScheduleElement{{Start: start, IntervalDays: 1}}}
}

// Task задача плана лечения.
type Task struct {
	CarePlanUUID     *uuid.UUID `json:"carePlanUUID,omitempty"` // CarePlanUUID план, к которому относится задача
	Title            string     `json:"title,omitempty"`        // Title название
	Instructions     string     `json:"instructions,omitempty"` // Instructions инструкции
	Schedule         Schedule   `json:"schedule"`               // Schedule расписание
	ImpactsAdherence bool       `json:"impactsAdherence"`       // ImpactsAdherence учитывается ли в статистике
	Versioned
}

// OutcomeValue значение результата выполнения задачи.
type OutcomeValue struct {
	CreatedDate time.Time `json:"createdDate"`     // CreatedDate время записи значения
	Kind        string    `json:"kind,omitempty"`  // Kind тип значения
	Units       string    `json:"units,omitempty"` // Units единицы измерения
	Value       string    `json:"value"`           // Value значение
}

// Outcome результат выполнения вхождения задачи.
type Outcome struct {
	Values              []OutcomeValue `json:"values,omitempty"`    // Values значения
	TaskUUID            uuid.UUID      `json:"taskUUID"`            // TaskUUID версия задачи
	TaskOccurrenceIndex int            `json:"taskOccurrenceIndex"` // TaskOccurrenceIndex номер вхождения расписания
	Versioned
}

// OutcomeID логический идентификатор результата по умолчанию.
func OutcomeID(taskUUID uuid.UUID, occurrence int) string {
	return fmt.Sprintf("%s_%d", taskUUID, occurrence)
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

func cloneUUIDPtr(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

func cloneTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
