package pubsub

import "yearbook/internal/domain/entity"

// eventAttributes builds the message attributes used for subscription filters and tracing.
func eventAttributes(event *entity.DomainEvent) map[string]string {
	attributes := make(map[string]string, len(event.Attributes)+4)
	for key, value := range event.Attributes {
		attributes[key] = value
	}

	attributes["event_id"] = event.EventID
	attributes["event_type"] = string(event.Type)
	if event.Scope != "" {
		attributes["scope_id"] = event.Scope.String()
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return attributes
}
