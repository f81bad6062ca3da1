package appointments

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vidanutri/nutriview/internal/nutricore"
	"github.com/vidanutri/nutriview/internal/telemetry/tracing"
	"github.com/vidanutri/nutriview/internal/token"
	"github.com/vidanutri/nutriview/pkg"
)

// Fetcher is the slice of the core API the appointments handler pulls from.
type Fetcher interface {
	GetAppointments(ctx context.Context, practitionerID int) ([]nutricore.Appointment, error)
	GetSubjectAppointments(ctx context.Context, practitionerID, subjectID int) ([]nutricore.Appointment, error)
}

type Handler struct {
	fetcher Fetcher
}

func NewHandler(fetcher Fetcher) *Handler {
	return &Handler{
		fetcher: fetcher,
	}
}

// HandleAll serves all appointments of the practitioner identified by the
// identity token payload, grouped by day. The identity token is the JWT
// issued by the core API and travels in its own header, separate from the
// opaque session token the auth middleware checks.
func (handler *Handler) HandleAll(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "appointmentsHandler.all")
	defer span.End()

	practitionerID, ok := token.ExtractPractitionerID(r.Header.Get("X-NUTRI-IDENTITY"))
	if !ok {
		span.SetStatus(codes.Error, "no practitioner identity in token")
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	span.SetAttributes(attribute.Int("practitioner.id", practitionerID))

	appointments, err := handler.fetcher.GetAppointments(ctx, practitionerID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("get appointments for practitioner %d: %s", practitionerID, err)
		http.Error(w, "core api unreachable", http.StatusBadGateway)
		return
	}

	handler.render(w, practitionerID, appointments)
}

// HandleForSubject serves the practitioner's appointments with one subject,
// grouped by day.
func (handler *Handler) HandleForSubject(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "appointmentsHandler.forSubject")
	defer span.End()

	practitionerID, ok := token.ExtractPractitionerID(r.Header.Get("X-NUTRI-IDENTITY"))
	if !ok {
		span.SetStatus(codes.Error, "no practitioner identity in token")
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	subjectID, err := strconv.Atoi(vars["id"])
	if err != nil {
		span.SetStatus(codes.Error, "invalid subject id")
		http.Error(w, "invalid subject id", http.StatusBadRequest)
		return
	}
	span.SetAttributes(
		attribute.Int("practitioner.id", practitionerID),
		attribute.Int("subject.id", subjectID),
	)

	appointments, err := handler.fetcher.GetSubjectAppointments(ctx, practitionerID, subjectID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf(
			"get appointments for practitioner %d and subject %d: %s",
			practitionerID, subjectID, err,
		)
		http.Error(w, "core api unreachable", http.StatusBadGateway)
		return
	}

	handler.render(w, practitionerID, appointments)
}

func (handler *Handler) render(w http.ResponseWriter, practitionerID int, appointments []nutricore.Appointment) {
	respBytes, err := json.Marshal(GroupByDay(appointments))
	if err != nil {
		log.Errorf("marshal appointment groups for practitioner %d: %s", practitionerID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}
