package queue

import (
	"database/sql"
	"errors"
	"time"
)

const itemColumns = "id, page_ref, page_id, page_name, language, status, ads_json, analysis_json, report_path, item_log_path, error_message, created_at, updated_at, progress_stage, progress_percent, progress_message, ads_found, ads_transcribed, last_heartbeat, needs_review, review_reason"

func scanItem(scanner interface{ Scan(dest ...any) error }) (*Item, error) {
	var (
		id               int64
		pageRef          string
		pageID           sql.NullString
		pageName         sql.NullString
		language         sql.NullString
		statusStr        string
		adsJSON          sql.NullString
		analysisJSON     sql.NullString
		reportPath       sql.NullString
		itemLogPath      sql.NullString
		errorMessage     sql.NullString
		createdRaw       sql.NullString
		updatedRaw       sql.NullString
		progressStage    sql.NullString
		progressPercent  sql.NullFloat64
		progressMessage  sql.NullString
		adsFound         sql.NullInt64
		adsTranscribed   sql.NullInt64
		lastHeartbeatRaw sql.NullString
		needsReview      sql.NullInt64
		reviewReason     sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&pageRef,
		&pageID,
		&pageName,
		&language,
		&statusStr,
		&adsJSON,
		&analysisJSON,
		&reportPath,
		&itemLogPath,
		&errorMessage,
		&createdRaw,
		&updatedRaw,
		&progressStage,
		&progressPercent,
		&progressMessage,
		&adsFound,
		&adsTranscribed,
		&lastHeartbeatRaw,
		&needsReview,
		&reviewReason,
	); err != nil {
		return nil, err
	}

	item := &Item{
		ID:              id,
		PageRef:         pageRef,
		PageID:          pageID.String,
		PageName:        pageName.String,
		Language:        language.String,
		Status:          Status(statusStr),
		AdsJSON:         adsJSON.String,
		AnalysisJSON:    analysisJSON.String,
		ReportPath:      reportPath.String,
		ItemLogPath:     itemLogPath.String,
		ErrorMessage:    errorMessage.String,
		ProgressStage:   progressStage.String,
		ProgressPercent: progressPercent.Float64,
		ProgressMessage: progressMessage.String,
		AdsFound:        adsFound.Int64,
		AdsTranscribed:  adsTranscribed.Int64,
	}
	if needsReview.Valid {
		item.NeedsReview = needsReview.Int64 != 0
	}
	item.ReviewReason = reviewReason.String

	if created, err := parseTimeString(createdRaw.String); err == nil {
		item.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		item.UpdatedAt = updated
	}
	if lastHeartbeatRaw.Valid {
		if heartbeat, err := parseTimeString(lastHeartbeatRaw.String); err == nil {
			item.LastHeartbeat = &heartbeat
		}
	}
	return item, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.UTC().Format(time.RFC3339Nano)
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
