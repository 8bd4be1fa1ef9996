package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/gmpsaude/clinic-scheduler/internal/domain/appointment"
	"github.com/gmpsaude/clinic-scheduler/internal/domain/permission"
	"github.com/gmpsaude/clinic-scheduler/internal/httperr"
	"github.com/gmpsaude/clinic-scheduler/internal/models"
	"github.com/gmpsaude/clinic-scheduler/internal/notify"
	"github.com/gmpsaude/clinic-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookInput struct {
	DoctorID  uint
	PatientID uint // ignorado para paciente; obrigatório para admin

	Date string // 2006-01-02
	Time string // 15:04
}

// ======================================================
// USE CASE
// ======================================================

type Book struct {
	repo  domain.Repository
	cache domain.SlotCache
	sched domain.Schedule
	mail  *notify.Dispatcher

	dailyLimit int
	tz         string
	now        func() time.Time
}

func NewBook(
	repo domain.Repository,
	cache domain.SlotCache,
	sched domain.Schedule,
	mail *notify.Dispatcher,
	dailyLimit int,
	tz string,
) *Book {
	return &Book{
		repo:       repo,
		cache:      cache,
		sched:      sched,
		mail:       mail,
		dailyLimit: dailyLimit,
		tz:         tz,
		now:        func() time.Time { return timezone.NowIn(tz) },
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute aplica as regras na ordem fixa: papel, dia útil, limite
// diário do médico, consulta futura do paciente, antecedência, slot do
// médico, slot do paciente. A primeira falha interrompe; nada é
// gravado antes de todas passarem.
func (uc *Book) Execute(
	ctx context.Context,
	actor *models.User,
	in BookInput,
) (*models.Appointment, error) {

	// (a) papel pode marcar
	pol := permission.ForRole(actor.Role)
	if err := pol.CanBookFor(actor, in.PatientID); err != nil {
		return nil, err
	}

	patientID := in.PatientID
	if actor.IsPatient() {
		patientID = actor.ID
	} else {
		// Quando o admin marca em nome de alguém, o indicado precisa
		// existir e ser paciente; médico ou admin na vaga de paciente é
		// recusado.
		if _, err := uc.repo.GetPatientByID(ctx, patientID); err != nil {
			return nil, httperr.ErrBusiness("patient_not_found")
		}
	}

	doctor, err := uc.repo.GetDoctorByID(ctx, in.DoctorID)
	if err != nil {
		return nil, httperr.ErrBusiness("doctor_not_found")
	}

	if in.Date == "" || in.Time == "" {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	loc := timezone.Location(uc.tz)
	slot, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		loc,
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// (b) dia útil
	if !uc.sched.IsBusinessDay(slot) {
		return nil, httperr.ErrBusiness("weekend_not_allowed")
	}

	if !uc.sched.IsGridSlot(slot) {
		return nil, httperr.ErrBusiness("invalid_slot")
	}

	// (c) limite diário do médico (só conta marcadas)
	dayStart := time.Date(slot.Year(), slot.Month(), slot.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	total, err := uc.repo.CountScheduledForDoctorOn(ctx, doctor.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	if total >= int64(uc.dailyLimit) {
		return nil, httperr.ErrBusiness("doctor_daily_limit")
	}

	now := uc.now()

	// (d) paciente sem outra consulta futura marcada
	hasFuture, err := uc.repo.HasFutureScheduled(ctx, patientID, now)
	if err != nil {
		return nil, err
	}
	if hasFuture {
		return nil, httperr.ErrBusiness("patient_has_future_appointment")
	}

	// (e) antecedência mínima
	if !uc.sched.MeetsLeadTime(slot, now) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// (f) slot livre para o médico
	taken, err := uc.repo.SlotTakenByDoctor(ctx, doctor.ID, slot)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.ErrBusiness("slot_occupied")
	}

	// (g) slot livre para o paciente
	taken, err = uc.repo.SlotTakenByPatient(ctx, patientID, slot)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.ErrBusiness("patient_slot_occupied")
	}

	ap := &models.Appointment{
		PatientID:   patientID,
		DoctorID:    doctor.ID,
		ScheduledAt: slot,
		Status:      string(domain.InitialStatus()),
	}

	// Agendamento + linha inicial de log na mesma transação; corrida
	// no banco volta como slot_occupied.
	if err := uc.repo.BookAppointment(ctx, ap, actor.ID); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, doctor.ID, in.Date)

	if patient, err := uc.repo.GetUserByID(ctx, patientID); err == nil {
		uc.mail.Dispatch(notify.Message{
			To:      patient.Email,
			Subject: "Consulta confirmada",
			Body: fmt.Sprintf(
				"Sua consulta foi marcada para %s com o médico %s.",
				slot.Format("2006-01-02 às 15:04"),
				doctor.Name,
			),
		})
	}

	return ap, nil
}
