package cli

import (
	"time"

	"github.com/iudanet/caresync/internal/models"
)

// editors запрашивают поля записи. Для новой записи текущие значения пусты,
// при обновлении пустой ввод сохраняет значение.

func (c *Cli) editPatient(p *models.Patient) (err error) {
	if p.Name.GivenName, err = c.required("Given name", p.Name.GivenName); err != nil {
		return err
	}
	if p.Name.FamilyName, err = c.field("Family name", p.Name.FamilyName); err != nil {
		return err
	}
	if p.Birthday, err = c.dateField("Birthday", p.Birthday); err != nil {
		return err
	}
	if p.Sex, err = c.field("Sex", p.Sex); err != nil {
		return err
	}
	p.Allergies, err = c.listField("Allergies", p.Allergies)
	return err
}

func (c *Cli) editCarePlan(p *models.CarePlan) (err error) {
	if p.Title, err = c.required("Title", p.Title); err != nil {
		return err
	}
	p.PatientUUID, err = c.refField("Patient", models.EntityTypePatient, p.PatientUUID)
	return err
}

func (c *Cli) editContact(ct *models.Contact) (err error) {
	if ct.Name.GivenName, err = c.required("Given name", ct.Name.GivenName); err != nil {
		return err
	}
	if ct.Name.FamilyName, err = c.field("Family name", ct.Name.FamilyName); err != nil {
		return err
	}
	if ct.Role, err = c.field("Role", ct.Role); err != nil {
		return err
	}
	if ct.Organization, err = c.field("Organization", ct.Organization); err != nil {
		return err
	}
	if ct.PhoneNumbers, err = c.listField("Phone numbers", ct.PhoneNumbers); err != nil {
		return err
	}
	if ct.EmailAddresses, err = c.listField("Emails", ct.EmailAddresses); err != nil {
		return err
	}
	ct.CarePlanUUID, err = c.refField("Care plan", models.EntityTypeCarePlan, ct.CarePlanUUID)
	return err
}

func (c *Cli) editTask(t *models.Task) (err error) {
	if t.Title, err = c.required("Title", t.Title); err != nil {
		return err
	}
	if t.Instructions, err = c.field("Instructions", t.Instructions); err != nil {
		return err
	}

	var start *time.Time
	if len(t.Schedule.Elements) > 0 {
		s := t.Schedule.Elements[0].Start
		start = &s
	}
	newStart, err := c.dateField("Daily from", start)
	if err != nil {
		return err
	}
	if newStart != nil && newStart != start {
		t.Schedule = models.DailyAt(*newStart)
	}

	t.CarePlanUUID, err = c.refField("Care plan", models.EntityTypeCarePlan, t.CarePlanUUID)
	return err
}

func (c *Cli) editOutcome(o *models.Outcome) (err error) {
	var value models.OutcomeValue
	if len(o.Values) > 0 {
		value = o.Values[0]
	}
	if value.Value, err = c.required("Value", value.Value); err != nil {
		return err
	}
	if value.Units, err = c.field("Units", value.Units); err != nil {
		return err
	}
	if value.CreatedDate.IsZero() {
		value.CreatedDate = time.Now()
	}
	o.Values = []models.OutcomeValue{value}
	return nil
}

// edit вызывает редактор по типу записи
func (c *Cli) edit(e models.Entity) error {
	switch e.Type {
	case models.EntityTypePatient:
		return c.editPatient(e.Patient)
	case models.EntityTypeCarePlan:
		return c.editCarePlan(e.CarePlan)
	case models.EntityTypeContact:
		return c.editContact(e.Contact)
	case models.EntityTypeTask:
		return c.editTask(e.Task)
	default:
		return c.editOutcome(e.Outcome)
	}
}

func (c *Cli) editTags(e models.Entity) (err error) {
	h := e.Header()
	h.Tags, err = c.listField("Tags", h.Tags)
	return err
}
