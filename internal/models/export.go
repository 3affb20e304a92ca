package models

import "time"

// ExportRecord is the audit document inserted into file_download_log after
// every successful export. The file on disk is the authoritative result;
// this record only describes it.
type ExportRecord struct {
	FileName       string                 `bson:"File_Name" json:"fileName"`
	FilePath       string                 `bson:"File_Path" json:"filePath"`
	ExportedAt     time.Time              `bson:"Export_Timestamp" json:"exportedAt"`
	RecordCount    int                    `bson:"Exported_Record_Count" json:"recordCount"`
	AppliedFilters map[string]interface{} `bson:"Applied_Filters" json:"appliedFilters"`
	RunID          string                 `bson:"Run_Id,omitempty" json:"runId,omitempty"`
}
