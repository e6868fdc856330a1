package api

import (
	"bytes"
	"fmt"
	"net/http"

	"dataprep/adapters/excel"
	"dataprep/internal/cleaning"
	"dataprep/internal/errors"
	"dataprep/internal/profiling"
	"dataprep/internal/quality"
	"dataprep/internal/visualization"

	"github.com/gin-gonic/gin"
)

const previewRows = 5

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Data Analysis API is running"})
}

func (s *Server) handleUpload(c *gin.Context) {
	ds, filename, err := s.loadDataset(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.respondJSON(c, http.StatusOK, gin.H{
		"success":     true,
		"filename":    filename,
		"shape":       gin.H{"rows": ds.Len(), "columns": ds.Width()},
		"columns":     ds.Names(),
		"column_info": profiling.DescribeColumns(ds),
		"preview":     ds.Head(previewRows).Records(),
	})
}

func (s *Server) handleStatistics(c *gin.Context) {
	ds, _, err := s.loadDataset(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	result, err := profiling.ComputeStatistics(ds, param(c, "column"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.respondJSON(c, http.StatusOK, gin.H{"success": true, "statistics": result})
}

func (s *Server) handleHistogram(c *gin.Context) {
	ds, _, err := s.loadDataset(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	column, err := requiredParam(c, "column")
	if err != nil {
		s.respondError(c, err)
		return
	}
	bins, err := intParam(c, "bins", visualization.DefaultBins)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.respondFigure(c)(visualization.Histogram(ds, column, bins))
}

func (s *Server) handleBoxPlot(c *gin.Context) {
	ds, _, err := s.loadDataset(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	column, err := requiredParam(c, "column")
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.respondFigure(c)(visualization.BoxPlot(ds, column))
}

func (s *Server) handleScatter(c *gin.Context) {
	ds, _, err := s.loadDataset(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	xColumn, err := requiredParam(c, "x_column")
	if err != nil {
		s.respondError(c, err)
		return
	}
	yColumn, err := requiredParam(c, "y_column")
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.respondFigure(c)(visualization.Scatter(ds, xColumn, yColumn))
}

func (s *Server) handleHeatmap(c *gin.Context) {
	ds, _, err := s.loadDataset(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.respondFigure(c)(visualization.Heatmap(ds))
}

func (s *Server) handleNormalDistribution(c *gin.Context) {
	ds, _, err := s.loadDataset(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	column, err := requiredParam(c, "column")
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.respondFigure(c)(visualization.NormalDistribution(ds, column))
}

// respondFigure writes a chart builder's result
func (s *Server) respondFigure(c *gin.Context) func(*visualization.Figure, error) {
	return func(fig *visualization.Figure, err error) {
		if err != nil {
			s.respondError(c, err)
			return
		}
		s.respondJSON(c, http.StatusOK, fig)
	}
}

func (s *Server) handleDetectMissing(c *gin.Context) {
	ds, _, err := s.loadDataset(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.respondJSON(c, http.StatusOK, gin.H{"success": true, "missing_info": quality.DetectMissing(ds)})
}

func (s *Server) handleDetectDuplicates(c *gin.Context) {
	ds, _, err := s.loadDataset(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.respondJSON(c, http.StatusOK, gin.H{"success": true, "duplicate_info": quality.DetectDuplicates(ds)})
}

func (s *Server) handleDetectOutliers(c *gin.Context) {
	ds, _, err := s.loadDataset(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	column, err := requiredParam(c, "column")
	if err != nil {
		s.respondError(c, err)
		return
	}
	methodName := param(c, "method")
	if methodName == "" {
		methodName = string(quality.MethodZScore)
	}
	method, err := quality.ParseMethod(methodName)
	if err != nil {
		s.respondError(c, err)
		return
	}

	report, err := quality.DetectOutliers(ds, column, method)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.respondJSON(c, http.StatusOK, gin.H{"success": true, "outlier_info": report})
}

// runCleaning decodes the upload and applies the requested cleaning
func (s *Server) runCleaning(c *gin.Context) (*cleaning.Result, bool) {
	ds, _, err := s.loadDataset(c)
	if err != nil {
		s.respondError(c, err)
		return nil, false
	}
	cfg, err := s.cleaningConfig(c)
	if err != nil {
		s.respondError(c, err)
		return nil, false
	}

	result, err := cleaning.Clean(ds, cfg)
	if err != nil {
		s.respondError(c, err)
		return nil, false
	}
	return result, true
}

func (s *Server) handleCleanDataset(c *gin.Context) {
	result, ok := s.runCleaning(c)
	if !ok {
		return
	}

	s.respondJSON(c, http.StatusOK, gin.H{
		"success":      true,
		"rows_before":  result.RowsBefore,
		"rows_after":   result.RowsAfter,
		"rows_removed": result.RowsRemoved,
		"stages":       result.Stages,
		"data":         result.Dataset.Records(),
	})
}

const (
	exportBaseName = "cleaned_data"
	xlsxMediaType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func (s *Server) handleDownloadCleaned(c *gin.Context) {
	format := param(c, "format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		s.respondError(c, errors.InvalidInput("format must be 'csv' or 'xlsx'"))
		return
	}

	result, ok := s.runCleaning(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	mediaType := "text/csv"
	var err error
	if format == "xlsx" {
		mediaType = xlsxMediaType
		err = excel.WriteXLSX(result.Dataset, &buf)
	} else {
		err = excel.WriteCSV(result.Dataset, &buf)
	}
	if err != nil {
		s.respondError(c, errors.Wrap(err, "failed to export cleaned dataset"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, exportBaseName, format))
	c.Data(http.StatusOK, mediaType, buf.Bytes())
}
