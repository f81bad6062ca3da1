package dashboard

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

type Handler struct {
	aggregator *Aggregator
}

func NewHandler(aggregator *Aggregator) *Handler {
	return &Handler{
		aggregator: aggregator,
	}
}

// HandleOwn serves the dashboard of the subject identified by the identity
// token payload. The identity token is the JWT issued by the core API and
// travels in its own header, separate from the opaque session token the auth
// middleware checks.
func (handler *Handler) HandleOwn(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "dashboardHandler.own")
	defer span.End()

	subjectID, ok := token.ExtractUserID(r.Header.Get("X-NUTRI-IDENTITY"))
	if !ok {
		span.SetStatus(codes.Error, "no subject identity in token")
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	span.SetAttributes(attribute.Int("subject.id", subjectID))

	handler.render(ctx, w, subjectID)
}

// HandleForSubject serves the dashboard of the subject from the path, the
// practitioner view of a client.
func (handler *Handler) HandleForSubject(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "dashboardHandler.forSubject")
	defer span.End()

	vars := mux.Vars(r)
	subjectID, err := strconv.Atoi(vars["id"])
	if err != nil {
		span.SetStatus(codes.Error, "invalid subject id")
		http.Error(w, "invalid subject id", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.Int("subject.id", subjectID))

	handler.render(ctx, w, subjectID)
}

func (handler *Handler) render(ctx context.Context, w http.ResponseWriter, subjectID int) {
	dashboard, err := handler.aggregator.Aggregate(ctx, subjectID)
	if err != nil {
		// partial views still render, only a completely empty one is an error
		log.Errorf("dashboard for subject %d assembled with errors: %s", subjectID, err)
		if empty(dashboard) {
			http.Error(w, "core api unreachable", http.StatusBadGateway)
			return
		}
	}

	respBytes, err := json.Marshal(dashboard)
	if err != nil {
		log.Errorf("marshal dashboard for subject %d: %s", subjectID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

func empty(d Dashboard) bool {
	return d.Partial &&
		d.Profile == (nutricore.Profile{}) &&
		d.Goals == (nutricore.IntakeGoals{}) &&
		d.Objective == nil
}
