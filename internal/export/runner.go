package export

import (
	"drs-export-worker/internal/excel"
	"drs-export-worker/internal/logger"
	"drs-export-worker/internal/reports"
	"drs-export-worker/internal/validation"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DocumentFinder runs read-only queries against named domain collections
type DocumentFinder interface {
	FindDocuments(collection string, filter bson.M) ([]bson.M, error)
}

// Runner executes the export pipeline for one report definition: validate
// parameters, build the filter, query, render, write, audit
type Runner struct {
	store  DocumentFinder
	writer *Writer
}

// NewRunner creates a report runner
func NewRunner(store DocumentFinder, writer *Writer) *Runner {
	return &Runner{store: store, writer: writer}
}

// Run generates one report. It returns the number of exported records; a
// zero-match query still produces a headers-only file. Validation failures
// abort before any query executes, so no file is written and no audit
// record is inserted.
func (r *Runner) Run(def reports.Definition, params map[string]interface{}, runID string) (int, error) {
	if err := validation.ValidateParams(def.ParamSchema, params); err != nil {
		return 0, err
	}

	filter, entries, err := def.BuildFilter(reports.Params(params))
	if err != nil {
		return 0, err
	}

	logger.Info("executing report query",
		zap.String("report", def.Name),
		zap.String("collection", def.Collection),
		zap.Any("filter", filter))

	documents, err := r.store.FindDocuments(def.Collection, filter)
	if err != nil {
		return 0, err
	}
	logger.Info("query returned documents",
		zap.String("report", def.Name),
		zap.Int("count", len(documents)))

	if def.Transform != nil {
		documents = def.Transform(reports.Params(params), documents)
	}

	workbook, err := excel.NewWorkbook(excel.SheetInput{
		Title:           def.SheetTitle,
		Columns:         def.Columns,
		Filters:         entries,
		Rows:            documents,
		DateLayout:      def.DateLayout,
		FilterSpansData: def.FilterSpansData,
	})
	if err != nil {
		return 0, errors.Wrapf(err, "failed to render %s sheet", def.Name)
	}
	defer workbook.Close()

	path, err := r.writer.Write(workbook, def.FilePrefix, len(documents), params, runID)
	if err != nil {
		return 0, err
	}

	if len(documents) == 0 {
		logger.Info("no records matched the selected filters, exported empty table",
			zap.String("report", def.Name),
			zap.String("path", path))
	} else {
		logger.Info("export completed",
			zap.String("report", def.Name),
			zap.Int("records", len(documents)),
			zap.String("path", path))
	}

	return len(documents), nil
}
