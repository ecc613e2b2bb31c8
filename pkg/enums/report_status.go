package enums

import "fmt"

// ReportStatus is the filing state of a GST report.
type ReportStatus string

const (
	ReportStatusPending ReportStatus = "pending"
	ReportStatusFiled   ReportStatus = "filed"
)

var validReportStatuses = []ReportStatus{ReportStatusPending, ReportStatusFiled}

func (s ReportStatus) IsValid() bool {
	for _, candidate := range validReportStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

func ParseReportStatus(value string) (ReportStatus, error) {
	for _, candidate := range validReportStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid report status %q", value)
}
