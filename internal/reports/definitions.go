package reports

import (
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// Date layouts used for datetime cells. Request-oriented reports use the
// short US-style date; everything else shows full timestamps.
const (
	LayoutDateTime = "2006-01-02 15:04:05"
	LayoutUSDate   = "01/02/2006"
)

// Template task IDs form a closed enumeration; the dispatch table below is
// the only way a task reaches report logic.
const (
	TemplateIncidentDetail        = 20
	TemplateIncidentOpen          = 21
	TemplatePendingReject         = 22
	TemplateDirectLOD             = 23
	TemplateCPE                   = 24
	TemplateCaseDistribution      = 26
	TemplateDistributionBatchList = 27
	TemplateBatchApproval         = 30
	TemplateDRCSummary            = 32
	TemplateDRCApproval           = 33
	TemplateRequestLog            = 37
	TemplateCaseRequestResponse   = 38
	TemplateDigitalSignatureLOD   = 39
	TemplateLODFinalReminder      = 40
)

// Definition describes one report type: where its records live, how its
// parameters translate into a filter, and how rows are projected into the
// sheet.
type Definition struct {
	TemplateID int
	Name       string
	SheetTitle string
	FilePrefix string
	Collection string
	Columns    []Column
	DateLayout string
	// FilterSpansData extends the autofilter range through the last data
	// row instead of the header row only
	FilterSpansData bool
	ParamSchema     string
	BuildFilter     func(Params) (bson.M, []FilterEntry, error)
	// Transform reshapes queried documents before rendering, for reports
	// whose rows are derived from nested arrays rather than whole documents
	Transform func(Params, []bson.M) []bson.M
}

// Registry returns the dispatch table mapping template task IDs to report
// definitions
func Registry() map[int]Definition {
	defs := []Definition{
		incidentDetail(),
		incidentOpen(),
		pendingReject(),
		directLOD(),
		cpeIncidents(),
		caseDistribution(),
		distributionBatchList(),
		batchApproval(),
		drcSummary(),
		drcApproval(),
		requestLog(),
		caseRequestResponse(),
		digitalSignatureLOD(),
		lodFinalReminder(),
	}

	registry := make(map[int]Definition, len(defs))
	for _, def := range defs {
		registry[def.TemplateID] = def
	}
	return registry
}

func incidentDetail() Definition {
	return Definition{
		TemplateID: TemplateIncidentDetail,
		Name:       "Incident detail export",
		SheetTitle: "INCIDENT REPORT",
		FilePrefix: "incidents_details",
		Collection: "Incident_log",
		Columns: []Column{
			{Field: "Incident_Id", Kind: KindObjectID},
			{Field: "Account_Num", Kind: KindText},
			{Field: "Incident_Status", Kind: KindText},
			{Field: "Actions", Kind: KindText},
			{Field: "Monitor_Months", Kind: KindCount},
			{Field: "Created_By", Kind: KindText},
			{Field: "Created_Dtm", Kind: KindDateTime},
			{Field: "Source_Type", Kind: KindText},
		},
		DateLayout: LayoutDateTime,
		ParamSchema: `{
			"type": "object",
			"properties": {
				"action_type": {"type": ["string", "null"]},
				"status": {"type": ["string", "null"]},
				"from_date": {"type": ["string", "null"]},
				"to_date": {"type": ["string", "null"]}
			}
		}`,
		BuildFilter: func(p Params) (bson.M, []FilterEntry, error) {
			filter := bson.M{}
			var entries []FilterEntry

			if action, ok := p.String("action_type"); ok {
				if err := oneOf("action_type", action,
					"collect arrears and CPE", "collect arrears", "collect CPE"); err != nil {
					return nil, nil, err
				}
				filter["Actions"] = matchValue(action, "collect arrears and CPE")
				entries = append(entries, FilterEntry{Label: "Action:", Value: action})
			}

			if status, ok := p.String("status"); ok {
				if err := oneOf("status", status,
					"Incident Open", "Reject", "Complete", "Incident Error", "Incident Inprogress"); err != nil {
					return nil, nil, err
				}
				filter["Incident_Status"] = matchValue(status, "Incident Open")
				entries = append(entries, FilterEntry{Label: "Status:", Value: status})
			}

			fromStr, hasFrom := p.String("from_date")
			toStr, hasTo := p.String("to_date")
			if hasFrom && hasTo {
				from, to, err := ParseDateRange(fromStr, toStr)
				if err != nil {
					return nil, nil, err
				}
				filter["Created_Dtm"] = DateRange(from, to)
				entries = append(entries, dateRangeEntry(fromStr, toStr))
			}

			return filter, entries, nil
		},
	}
}

func pendingReject() Definition {
	return Definition{
		TemplateID: TemplatePendingReject,
		Name:       "Pending reject incident export",
		SheetTitle: "PENDING REJECT INCIDENT REPORT",
		FilePrefix: "pending_reject_incidents",
		Collection: "Incident",
		Columns: []Column{
			{Field: "Incident_Id", Kind: KindObjectID},
			{Field: "Incident_Status", Kind: KindText},
			{Field: "Account_Num", Kind: KindText},
			{Field: "Filtered_Reason", Kind: KindText},
			{Field: "Rejected_Dtm", Kind: KindDateTime},
			{Field: "Source_Type", Kind: KindText},
		},
		DateLayout: LayoutDateTime,
		ParamSchema: `{
			"type": "object",
			"properties": {
				"drc_commission_rules": {
					"type": ["array", "null"],
					"items": {"type": "string"}
				},
				"from_date": {"type": ["string", "null"]},
				"to_date": {"type": ["string", "null"]}
			}
		}`,
		BuildFilter: func(p Params) (bson.M, []FilterEntry, error) {
			// The report is always scoped to rejected incidents; parameters
			// only narrow it further
			filter := bson.M{"Incident_Status": bson.M{"$in": []string{"Incident Reject"}}}
			var entries []FilterEntry

			if rules, ok := p.StringList("drc_commission_rules"); ok {
				if len(rules) == 0 {
					return nil, nil, &ValidationError{
						Kind:    InvalidParameter,
						Field:   "drc_commission_rules",
						Message: "drc_commission_rules must be a non-empty list of valid commission rules",
					}
				}
				filter["Filtered_Reason"] = bson.M{"$in": rules}
				entries = append(entries, FilterEntry{Label: "DRC Commission Rules:", Value: strings.Join(rules, ", ")})
			}

			fromStr, hasFrom := p.String("from_date")
			toStr, hasTo := p.String("to_date")
			if hasFrom && hasTo {
				from, to, err := ParseDateRange(fromStr, toStr)
				if err != nil {
					return nil, nil, err
				}
				filter["Rejected_Dtm"] = DateRange(from, to)
				entries = append(entries, dateRangeEntry(fromStr, toStr))
			}

			return filter, entries, nil
		},
	}
}

func directLOD() Definition {
	return Definition{
		TemplateID: TemplateDirectLOD,
		Name:       "Direct LOD incident export",
		SheetTitle: "DIRECT LOD REPORT",
		FilePrefix: "direct_lod_incidents_task",
		Collection: "Incident",
		Columns: []Column{
			{Field: "Incident_Id", Kind: KindObjectID},
			{Field: "Account_Num", Kind: KindText},
			{Field: "Incident_Status", Kind: KindText},
			{Field: "Actions", Kind: KindText},
			{Field: "drc_commision_rule", Kind: KindText},
			{Field: "Created_By", Kind: KindText},
			{Field: "Created_Dtm", Kind: KindDateTime},
		},
		DateLayout:      LayoutDateTime,
		FilterSpansData: true,
		ParamSchema: `{
			"type": "object",
			"properties": {
				"drc_commission_rule": {"type": ["string", "null"]},
				"from_date": {"type": ["string", "null"]},
				"to_date": {"type": ["string", "null"]}
			}
		}`,
		BuildFilter: func(p Params) (bson.M, []FilterEntry, error) {
			// Direct LOD is a fixed-status view over the Incident collection
			filter := bson.M{"Incident_Status": "Direct LOD"}
			entries := []FilterEntry{{Label: "Incident Status:", Value: "Direct LOD"}}

			if rule, ok := p.String("drc_commission_rule"); ok {
				if err := oneOf("drc_commission_rule", rule, "PEO TV", "BB"); err != nil {
					return nil, nil, err
				}
				filter["drc_commision_rule"] = matchValue(rule, "PEO TV")
				entries = append(entries, FilterEntry{Label: "Commission Rule:", Value: rule})
			}

			fromStr, hasFrom := p.String("from_date")
			toStr, hasTo := p.String("to_date")
			if hasFrom && hasTo {
				from, to, err := ParseDateRange(fromStr, toStr)
				if err != nil {
					return nil, nil, err
				}
				filter["Created_Dtm"] = DateRange(from, to)
				entries = append(entries, dateRangeEntry(fromStr, toStr))
			}

			return filter, entries, nil
		},
	}
}

func caseDistribution() Definition {
	return Definition{
		TemplateID: TemplateCaseDistribution,
		Name:       "Case distribution export",
		SheetTitle: "CASE DISTRIBUTION REPORT",
		FilePrefix: "case_distribution_details",
		Collection: "Case_distribution_drc_transactions",
		Columns: []Column{
			{Field: "Case Distribution Batch ID", Kind: KindText},
			{Field: "Created Dtm", Kind: KindDateTime},
			{Field: "Distributed Status", Kind: KindText},
			{Field: "Action Type", Kind: KindText},
			{Field: "DRC Commission Rule", Kind: KindText},
			{Field: "Arrears Band", Kind: KindText},
			{Field: "Case Count", Kind: KindCount},
			{Field: "Approval", Kind: KindText},
		},
		DateLayout: LayoutDateTime,
		ParamSchema: `{
			"type": "object",
			"properties": {
				"current_arrears_band": {"type": ["string", "null"]},
				"drc_commission_rule": {"type": ["string", "null"]},
				"from_date": {"type": ["string", "null"]},
				"to_date": {"type": ["string", "null"]}
			}
		}`,
		BuildFilter: func(p Params) (bson.M, []FilterEntry, error) {
			filter := bson.M{}
			var entries []FilterEntry

			if band, ok := p.String("current_arrears_band"); ok {
				if err := oneOf("current_arrears_band", band, "AB-5_10", "AB-25_50"); err != nil {
					return nil, nil, err
				}
				filter["Arrears Band"] = band
				entries = append(entries, FilterEntry{Label: "Arrears Band:", Value: band})
			}

			if rule, ok := p.String("drc_commission_rule"); ok {
				if err := oneOf("drc_commission_rule", rule, "PEO TV", "BB"); err != nil {
					return nil, nil, err
				}
				filter["drc_commision_rule"] = matchValue(rule, "PEO TV")
				entries = append(entries, FilterEntry{Label: "Commission Rule:", Value: rule})
			}

			fromStr, hasFrom := p.String("from_date")
			toStr, hasTo := p.String("to_date")
			if hasFrom && hasTo {
				from, to, err := ParseDateRange(fromStr, toStr)
				if err != nil {
					return nil, nil, err
				}
				// Field name carries a space in this collection
				filter["Created Dtm"] = DateRange(from, to)
				entries = append(entries, dateRangeEntry(fromStr, toStr))
			}

			return filter, entries, nil
		},
	}
}

func drcApproval() Definition {
	return Definition{
		TemplateID: TemplateDRCApproval,
		Name:       "DRC assign manager approval export",
		SheetTitle: "DRC APPROVAL REPORT",
		FilePrefix: "drc_approval",
		Collection: "Case_details",
		Columns: []Column{
			{Field: "case_id", Kind: KindObjectID},
			{Field: "created_dtm", Kind: KindDateTime},
			{Field: "created_by", Kind: KindText},
			{Field: "approval_type", Kind: KindText},
			{Field: "approve_status", Kind: KindText},
			{Field: "approved_by", Kind: KindText},
			{Field: "remark", Kind: KindText},
		},
		DateLayout:      LayoutDateTime,
		FilterSpansData: true,
		ParamSchema: `{
			"type": "object",
			"properties": {
				"approval_type": {"type": ["string", "null"]},
				"from_date": {"type": ["string", "null"]},
				"to_date": {"type": ["string", "null"]}
			}
		}`,
		Transform: flattenApprovals,
		BuildFilter: func(p Params) (bson.M, []FilterEntry, error) {
			filter := bson.M{}
			var entries []FilterEntry

			if approval, ok := p.String("approval_type"); ok {
				if err := oneOf("approval_type", approval, "a1", "a2"); err != nil {
					return nil, nil, err
				}
				filter["approval_type"] = matchValue(approval, "a1")
				entries = append(entries, FilterEntry{Label: "Approval Type:", Value: approval})
			}

			fromStr, hasFrom := p.String("from_date")
			toStr, hasTo := p.String("to_date")
			if hasFrom && hasTo {
				from, to, err := ParseDateRange(fromStr, toStr)
				if err != nil {
					return nil, nil, err
				}
				filter["Created_Dtm"] = DateRange(from, to)
				entries = append(entries, dateRangeEntry(fromStr, toStr))
			}

			return filter, entries, nil
		},
	}
}

func requestLog() Definition {
	return Definition{
		TemplateID: TemplateRequestLog,
		Name:       "Request log export",
		SheetTitle: "REQUEST LOG REPORT",
		FilePrefix: "request_log_details",
		Collection: "Request_log",
		Columns: []Column{
			{Field: "Case ID", Kind: KindText},
			{Field: "Status", Kind: KindText},
			{Field: "Request Status", Kind: KindText},
			{Field: "Amount", Kind: KindCurrency},
			{Field: "Validity Period", Kind: KindText},
			{Field: "DRC", Kind: KindText},
			{Field: "Request Type", Kind: KindText},
			{Field: "Requested date", Kind: KindDateTime},
			{Field: "Approved", Kind: KindText},
		},
		DateLayout: LayoutUSDate,
		ParamSchema: `{
			"type": "object",
			"properties": {
				"delegate_user_id": {"type": ["string", "null"]},
				"user_interaction_type": {"type": ["string", "null"]},
				"request_accept": {"type": ["string", "null"]},
				"from_date": {"type": ["string", "null"]},
				"to_date": {"type": ["string", "null"]}
			}
		}`,
		BuildFilter: func(p Params) (bson.M, []FilterEntry, error) {
			filter := bson.M{}
			var entries []FilterEntry

			if delegate, ok := p.String("delegate_user_id"); ok {
				if delegate == "" {
					return nil, nil, &ValidationError{
						Kind:    InvalidParameter,
						Field:   "delegate_user_id",
						Message: "delegate_user_id must be a non-empty string",
					}
				}
				filter["delegate_user_id"] = delegate
				entries = append(entries, FilterEntry{Label: "Delegate User:", Value: delegate})
			}

			if interaction, ok := p.String("user_interaction_type"); ok {
				if err := oneOf("user_interaction_type", interaction, "FMB", "RO", "Admin"); err != nil {
					return nil, nil, err
				}
				filter["Request Type"] = interaction
				entries = append(entries, FilterEntry{Label: "Interaction Type:", Value: interaction})
			}

			if accept, ok := p.String("request_accept"); ok {
				if err := oneOf("request_accept", accept, "Approved", "Pending", "Rejected"); err != nil {
					return nil, nil, err
				}
				filter["Approved"] = accept
				entries = append(entries, FilterEntry{Label: "Request Accept:", Value: accept})
			}

			fromStr, hasFrom := p.String("from_date")
			toStr, hasTo := p.String("to_date")
			if hasFrom && hasTo {
				from, to, err := ParseDateRange(fromStr, toStr)
				if err != nil {
					return nil, nil, err
				}
				filter["Requested date"] = DateRange(from, to)
				entries = append(entries, dateRangeEntry(fromStr, toStr))
			}

			return filter, entries, nil
		},
	}
}

func caseRequestResponse() Definition {
	return Definition{
		TemplateID: TemplateCaseRequestResponse,
		Name:       "Case request response export",
		SheetTitle: "CASE REQUEST RESPONSE REPORT",
		FilePrefix: "cases_details",
		Collection: "Case_log",
		Columns: []Column{
			{Field: "Case ID", Kind: KindText},
			{Field: "Status", Kind: KindText},
			{Field: "Request status", Kind: KindText},
			{Field: "Validity Period", Kind: KindText},
			{Field: "DRC", Kind: KindText},
			{Field: "Request Details", Kind: KindText},
			{Field: "Letter issued on", Kind: KindDateTime},
			{Field: "Approved on", Kind: KindDateTime},
			{Field: "Approved by", Kind: KindText},
			{Field: "Remark", Kind: KindText},
		},
		DateLayout: LayoutUSDate,
		ParamSchema: `{
			"type": "object",
			"properties": {
				"case_current_status": {"type": ["string", "null"]},
				"from_date": {"type": ["string", "null"]},
				"to_date": {"type": ["string", "null"]}
			}
		}`,
		BuildFilter: func(p Params) (bson.M, []FilterEntry, error) {
			filter := bson.M{}
			var entries []FilterEntry

			if status, ok := p.String("case_current_status"); ok {
				if err := oneOf("case_current_status", status, "Pending FMB", "In progress", "Closed"); err != nil {
					return nil, nil, err
				}
				filter["Status"] = matchValue(status, "Pending FMB")
				entries = append(entries, FilterEntry{Label: "Status:", Value: status})
			}

			fromStr, hasFrom := p.String("from_date")
			toStr, hasTo := p.String("to_date")
			if hasFrom && hasTo {
				from, to, err := ParseDateRange(fromStr, toStr)
				if err != nil {
					return nil, nil, err
				}
				// A case matches when either approval or letter issue falls
				// inside the range
				filter["$or"] = OrDateRange([]string{"Approved on", "Letter issued on"}, from, to)
				entries = append(entries, dateRangeEntry(fromStr, toStr))
			}

			return filter, entries, nil
		},
	}
}

func lodFinalReminder() Definition {
	return Definition{
		TemplateID: TemplateLODFinalReminder,
		Name:       "LOD or final reminder export",
		SheetTitle: "LOD OR FINAL REMINDER REPORT",
		FilePrefix: "each_lod_or_final_reminder",
		Collection: "Incident",
		Columns: []Column{
			{Field: "Incident_Id", Kind: KindObjectID},
			{Field: "Incident_Status", Kind: KindText},
			{Field: "Account_Num", Kind: KindText},
			{Field: "Created_Dtm", Kind: KindDateTime},
			{Field: "Filtered_Reason", Kind: KindText},
			{Field: "Rejected_Dtm", Kind: KindDateTime},
			{Field: "Rejected_By", Kind: KindText},
		},
		DateLayout:      LayoutDateTime,
		FilterSpansData: true,
		ParamSchema: `{
			"type": "object",
			"properties": {
				"case_current_status": {"type": ["string", "null"]},
				"current_document_type": {"type": ["string", "null"]}
			}
		}`,
		BuildFilter: func(p Params) (bson.M, []FilterEntry, error) {
			filter := bson.M{}
			var entries []FilterEntry

			if action, ok := p.String("case_current_status"); ok {
				if err := oneOf("case_current_status", action,
					"collect arrears and CPE", "collect arrears", "collect CPE"); err != nil {
					return nil, nil, err
				}
				filter["Actions"] = matchValue(action, "collect arrears and CPE")
				entries = append(entries, FilterEntry{Label: "Action:", Value: action})
			}

			if docType, ok := p.String("current_document_type"); ok {
				if err := oneOf("current_document_type", docType, "LOD", "Final Reminder"); err != nil {
					return nil, nil, err
				}
				filter["current_document_type"] = matchValue(docType, "LOD")
				entries = append(entries, FilterEntry{Label: "Document Type:", Value: docType})
			}

			return filter, entries, nil
		},
	}
}

// flattenApprovals emits one row per element of a case's approve array,
// carrying the owning case's identity fields onto each row. When an
// approval_type parameter is set only matching elements survive.
func flattenApprovals(p Params, cases []bson.M) []bson.M {
	wanted, hasType := p.String("approval_type")

	var rows []bson.M
	for _, c := range cases {
		approvals, ok := c["approve"].(bson.A)
		if !ok {
			continue
		}
		for _, raw := range approvals {
			approval, ok := raw.(bson.M)
			if !ok {
				continue
			}
			if hasType && approval["approval_type"] != wanted {
				continue
			}
			rows = append(rows, bson.M{
				"case_id":        c["case_id"],
				"created_dtm":    c["created_dtm"],
				"created_by":     c["created_by"],
				"approval_type":  approval["approval_type"],
				"approve_status": approval["approve_status"],
				"approved_by":    approval["approved_by"],
				"remark":         approval["remark"],
			})
		}
	}
	return rows
}

func incidentOpen() Definition {
	return Definition{
		TemplateID: TemplateIncidentOpen,
		Name:       "Open incident distribution export",
		SheetTitle: "OPEN INCIDENT DISTRIBUTION REPORT",
		FilePrefix: "incident_open_distribution",
		Collection: "Incident_log",
		Columns: []Column{
			{Field: "Id", Kind: KindObjectID},
			{Field: "Incident_Status", Kind: KindText},
			{Field: "Account_Num", Kind: KindText},
			{Field: "Actions", Kind: KindText},
			{Field: "Amount", Kind: KindCurrency},
			{Field: "Source_Type", Kind: KindText},
		},
		DateLayout:  LayoutDateTime,
		ParamSchema: `{"type": "object"}`,
		BuildFilter: func(Params) (bson.M, []FilterEntry, error) {
			// Parameterless fixed view over open incidents
			return bson.M{"Incident_Status": "Incident Open"}, nil, nil
		},
	}
}

func cpeIncidents() Definition {
	return Definition{
		TemplateID: TemplateCPE,
		Name:       "CPE incident export",
		SheetTitle: "CPE INCIDENT REPORT",
		FilePrefix: "cpe_incidents",
		Collection: "Incident_log",
		Columns: []Column{
			{Field: "Incident_Id", Kind: KindObjectID},
			{Field: "Incident_Status", Kind: KindText},
			{Field: "Account_Num", Kind: KindText},
			{Field: "Actions", Kind: KindText},
			{Field: "Created_Dtm", Kind: KindDateTime},
		},
		DateLayout:      LayoutDateTime,
		FilterSpansData: true,
		ParamSchema: `{
			"type": "object",
			"properties": {
				"drc_commission_rules": {"type": ["string", "null"]},
				"from_date": {"type": ["string", "null"]},
				"to_date": {"type": ["string", "null"]}
			}
		}`,
		BuildFilter: func(p Params) (bson.M, []FilterEntry, error) {
			// Always scoped to CPE collection incidents
			filter := bson.M{"Actions": "collect CPE"}
			entries := []FilterEntry{{Label: "Action:", Value: "collect CPE"}}

			if rule, ok := p.String("drc_commission_rules"); ok {
				if err := oneOf("drc_commission_rules", rule, "PEO TV", "BB"); err != nil {
					return nil, nil, err
				}
				filter["Drc commision rule"] = matchValue(rule, "PEO TV")
				entries = append(entries, FilterEntry{Label: "DRC Commission Rule:", Value: rule})
			}

			fromStr, hasFrom := p.String("from_date")
			toStr, hasTo := p.String("to_date")
			if hasFrom && hasTo {
				from, to, err := ParseDateRange(fromStr, toStr)
				if err != nil {
					return nil, nil, err
				}
				filter["Created_Dtm"] = DateRange(from, to)
				entries = append(entries, dateRangeEntry(fromStr, toStr))
			}

			return filter, entries, nil
		},
	}
}

func distributionBatchList() Definition {
	return Definition{
		TemplateID: TemplateDistributionBatchList,
		Name:       "Case distribution batch list export",
		SheetTitle: "CASE DISTRIBUTION DRC TRANSACTION LIST",
		FilePrefix: "case_distribution_drc_transaction_batch_list_details",
		Collection: "Case_distribution_drc_transactions",
		Columns: []Column{
			{Field: "Batch Sequence", Kind: KindCount},
			{Field: "rulebase count", Kind: KindCount},
			{Field: "Approved on", Kind: KindDateTime},
		},
		DateLayout: LayoutDateTime,
		ParamSchema: `{
			"type": "object",
			"properties": {
				"case_distribution_batch_id": {"type": ["integer", "null"]}
			}
		}`,
		BuildFilter: func(p Params) (bson.M, []FilterEntry, error) {
			filter := bson.M{}
			var entries []FilterEntry

			if id, ok := p.Int("case_distribution_batch_id"); ok {
				if id != 1 && id != 2 {
					return nil, nil, &ValidationError{
						Kind:    InvalidParameter,
						Field:   "case_distribution_batch_id",
						Message: "case_distribution_batch_id must be one of: 1, 2",
					}
				}
				filter["case_distribution_batch_id"] = id
				entries = append(entries, FilterEntry{Label: "Batch ID:", Value: strconv.Itoa(id)})
			}

			return filter, entries, nil
		},
	}
}

func batchApproval() Definition {
	return Definition{
		TemplateID: TemplateBatchApproval,
		Name:       "DRC assign batch approval export",
		SheetTitle: "DRC ASSIGN BATCH APPROVAL REPORT",
		FilePrefix: "drc_assign_batch_approval",
		Collection: "Template_forwarded_approver",
		Columns: []Column{
			{Field: "Batch_id", Kind: KindObjectID},
			{Field: "created_dtm", Kind: KindDateTime},
			{Field: "drc_commision_rule", Kind: KindText},
			{Field: "approval_type", Kind: KindText},
			{Field: "case_count", Kind: KindCount},
			{Field: "total_arrears", Kind: KindCurrency},
		},
		DateLayout: LayoutDateTime,
		ParamSchema: `{
			"type": "object",
			"properties": {
				"approver_ref": {"type": ["string", "null"]}
			}
		}`,
		BuildFilter: func(p Params) (bson.M, []FilterEntry, error) {
			filter := bson.M{}
			var entries []FilterEntry

			if ref, ok := p.String("approver_ref"); ok {
				if err := oneOf("approver_ref", ref, "k1", "k2"); err != nil {
					return nil, nil, err
				}
				filter["approver_ref"] = ref
				entries = append(entries, FilterEntry{Label: "Approver Reference:", Value: ref})
			}

			return filter, entries, nil
		},
	}
}

func drcSummary() Definition {
	return Definition{
		TemplateID: TemplateDRCSummary,
		Name:       "DRC summary export",
		SheetTitle: "DRC SUMMARY REPORT",
		FilePrefix: "drc_summary",
		Collection: "Case_Distribution_DRC_Summary",
		Columns: []Column{
			{Field: "created_dtm", Kind: KindDateTime},
			{Field: "drc_id", Kind: KindText},
			{Field: "drc", Kind: KindText},
			{Field: "case_count", Kind: KindCount},
			{Field: "tot_arrease", Kind: KindCurrency},
			{Field: "proceed_on", Kind: KindDateTime},
		},
		DateLayout: LayoutDateTime,
		ParamSchema: `{
			"type": "object",
			"properties": {
				"drc": {"type": ["string", "null"]},
				"case_distribution_batch_id": {"type": ["integer", "null"]}
			}
		}`,
		BuildFilter: func(p Params) (bson.M, []FilterEntry, error) {
			filter := bson.M{}
			var entries []FilterEntry

			if drc, ok := p.String("drc"); ok {
				if err := oneOf("drc", drc, "D1", "D2"); err != nil {
					return nil, nil, err
				}
				filter["drc"] = matchValue(drc, "D1")
				entries = append(entries, FilterEntry{Label: "DRC:", Value: drc})
			}

			if id, ok := p.Int("case_distribution_batch_id"); ok {
				if id < 1 || id > 3 {
					return nil, nil, &ValidationError{
						Kind:    InvalidParameter,
						Field:   "case_distribution_batch_id",
						Message: "case_distribution_batch_id must be 1, 2, or 3",
					}
				}
				filter["case_distribution_batch_id"] = id
				entries = append(entries, FilterEntry{Label: "Case Distribution Batch ID:", Value: strconv.Itoa(id)})
			}

			return filter, entries, nil
		},
	}
}

func digitalSignatureLOD() Definition {
	return Definition{
		TemplateID: TemplateDigitalSignatureLOD,
		Name:       "Digital signatures LOD export",
		SheetTitle: "DIGITAL SIGNATURES RELAVENT LOD REPORT",
		FilePrefix: "digital_signatures_relavent_lod",
		Collection: "case_details",
		Columns: []Column{
			{Field: "Incident_Id", Kind: KindObjectID},
			{Field: "Incident_Status", Kind: KindText},
			{Field: "Account_Num", Kind: KindText},
			{Field: "Created_Dtm", Kind: KindDateTime},
			{Field: "Filtered_Reason", Kind: KindText},
		},
		DateLayout: LayoutDateTime,
		ParamSchema: `{
			"type": "object",
			"properties": {
				"case_current_status": {"type": ["string", "null"]}
			}
		}`,
		BuildFilter: func(p Params) (bson.M, []FilterEntry, error) {
			filter := bson.M{}
			var entries []FilterEntry

			if status, ok := p.String("case_current_status"); ok {
				if err := oneOf("case_current_status", status, "Abandand", "LIT prescribed"); err != nil {
					return nil, nil, err
				}
				// Field name as stored in the collection
				filter["Case_current_starus"] = matchValue(status, "Abandand")
				entries = append(entries, FilterEntry{Label: "Case Current Status:", Value: status})
			}

			return filter, entries, nil
		},
	}
}
