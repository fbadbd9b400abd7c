package main

import (
	"encoding/json"
	"fmt"

	"github.com/prometheus/common/model"
)

const (
	// maxListedAlerts caps the per-alert lines logged for a single webhook.
	maxListedAlerts = 20

	unknownLabel  = "unknown"
	missingStatus = "None"
)

// Alert is the summary of one alert record, with defaults already applied.
type Alert struct {
	Status   string
	Name     string
	Job      string
	Instance string
}

func (a Alert) String() string {
	return fmt.Sprintf("- %s %s job=%s instance=%s", a.Status, a.Name, a.Job, a.Instance)
}

// alertsOf returns the "alerts" sequence of a decoded payload. ok is false
// when the payload is not an object or its "alerts" entry is missing or not
// an array.
func alertsOf(payload any) (alerts []any, ok bool) {
	obj, isObject := payload.(map[string]any)
	if !isObject {
		return nil, false
	}
	alerts, ok = obj["alerts"].([]any)
	return alerts, ok
}

// summarizeAlert reads status and the identifying labels from one entry of
// the alerts array. Entries or labels that are not objects count as empty.
func summarizeAlert(entry any) Alert {
	obj, _ := entry.(map[string]any)
	labels, _ := obj["labels"].(map[string]any)

	return Alert{
		Status:   field(obj, "status", missingStatus),
		Name:     field(labels, string(model.AlertNameLabel), unknownLabel),
		Job:      field(labels, string(model.JobLabel), unknownLabel),
		Instance: field(labels, string(model.InstanceLabel), unknownLabel),
	}
}

// summaryLines renders the log lines for one webhook: the count line followed
// by at most maxListedAlerts alert lines.
func summaryLines(payload any) []string {
	alerts, ok := alertsOf(payload)

	lines := []string{fmt.Sprintf("alert-receiver: received %d alerts", len(alerts))}
	if !ok {
		return lines
	}

	if len(alerts) > maxListedAlerts {
		alerts = alerts[:maxListedAlerts]
	}
	for _, entry := range alerts {
		lines = append(lines, summarizeAlert(entry).String())
	}
	return lines
}

func field(obj map[string]any, key, fallback string) string {
	v, exists := obj[key]
	if !exists {
		return fallback
	}
	return renderValue(v)
}

// renderValue formats a decoded JSON value for a summary line. null and
// booleans are spelled None, True and False.
func renderValue(v any) string {
	switch val := v.(type) {
	case nil:
		return missingStatus
	case string:
		return val
	case bool:
		if val {
			return "True"
		}
		return "False"
	case json.Number:
		return val.String()
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}
