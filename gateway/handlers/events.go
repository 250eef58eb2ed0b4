package handlers

import (
	"context"

	"github.com/skillswap/gdpr-system/gateway/application"
	"github.com/skillswap/gdpr-system/shared/events"
)

// GatewayEventHandlers routes bus events consumed by the orchestrator
type GatewayEventHandlers struct {
	processStepResult *application.ProcessStepResult
	requestExport     *application.RequestExport
}

// NewGatewayEventHandlers creates new gateway event handlers
func NewGatewayEventHandlers(
	processStepResult *application.ProcessStepResult,
	requestExport *application.RequestExport,
) *GatewayEventHandlers {
	return &GatewayEventHandlers{
		processStepResult: processStepResult,
		requestExport:     requestExport,
	}
}

// GatewayHandlerID keys the dedup ledger rows written for this handler.
const GatewayHandlerID = "gdpr-gateway-event-handler"

// HandlerID returns the unique identifier for this event handler
func (h *GatewayEventHandlers) HandlerID() string {
	return GatewayHandlerID
}

// Topics lists every topic this handler consumes
func (h *GatewayEventHandlers) Topics() []events.Topic {
	topics := []events.Topic{events.ExportResponseTopic}
	for _, participant := range events.Participants {
		topics = append(topics, events.StepResultTopic(participant))
	}
	return topics
}

// Handle implements the events.EventHandler interface
func (h *GatewayEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	switch {
	case event.Topic == events.ExportResponseTopic:
		return h.requestExport.HandleResponse(ctx, event)
	case event.Topic.Matches(events.StepResultPattern):
		return h.processStepResult.Execute(ctx, event)
	default:
		// Unknown topic, ignore
		return nil
	}
}
