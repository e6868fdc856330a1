package api

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"dataprep/adapters/excel"
	"dataprep/domain/dataset"
	"dataprep/internal/cleaning"
	"dataprep/internal/errors"
	"dataprep/internal/quality"

	"github.com/gin-gonic/gin"
)

const uploadField = "file"

// loadDataset decodes the uploaded file of the request
func (s *Server) loadDataset(c *gin.Context) (*dataset.Dataset, string, error) {
	header, err := c.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, "", errors.PayloadTooLarge(s.maxMB)
		}
		return nil, "", errors.InvalidInput("a file upload in the 'file' field is required")
	}
	if header.Size > s.maxUpload {
		return nil, "", errors.PayloadTooLarge(s.maxMB)
	}

	file, err := header.Open()
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to open upload")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to read upload")
	}

	ds, err := s.reader.ReadBytes(header.Filename, content)
	if err != nil {
		if stderrors.Is(err, excel.ErrUnsupportedFormat) {
			return nil, "", errors.WithCode(errors.CodeInvalidInput,
				fmt.Errorf("invalid file format, please upload CSV or Excel files: %w", err))
		}
		return nil, "", errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("error reading file: %w", err))
	}

	s.logger.Debug("decoded %s (%d rows, %d columns) request_id=%s",
		header.Filename, ds.Len(), ds.Width(), c.GetString(requestIDKey))
	return ds, header.Filename, nil
}

// param reads a scalar from the query string, then from the form
func param(c *gin.Context, name string) string {
	if value, ok := c.GetQuery(name); ok {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(c.PostForm(name))
}

func requiredParam(c *gin.Context, name string) (string, error) {
	value := param(c, name)
	if value == "" {
		return "", errors.InvalidInputf("parameter '%s' is required", name)
	}
	return value, nil
}

func intParam(c *gin.Context, name string, defaultValue int) (int, error) {
	raw := param(c, name)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, errors.InvalidInputf("parameter '%s' must be a positive integer", name)
	}
	return value, nil
}

func (s *Server) flagParam(c *gin.Context, name string, defaultValue bool) (bool, error) {
	raw := param(c, name)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := s.flags.ParseFlag(raw)
	if err != nil {
		return false, errors.InvalidInputf("parameter '%s': %v", name, err)
	}
	return value, nil
}

// cleaningConfig reads the cleaning options, starting from the defaults
func (s *Server) cleaningConfig(c *gin.Context) (cleaning.Config, error) {
	cfg := cleaning.DefaultConfig()

	if raw := param(c, "handle_missing"); raw != "" {
		cfg.HandleMissing = cleaning.Policy(raw)
	}
	if raw := param(c, "outlier_method"); raw != "" {
		cfg.OutlierMethod = quality.Method(raw)
	}
	cfg.OutlierColumn = param(c, "outlier_column")

	var err error
	if cfg.RemoveDuplicates, err = s.flagParam(c, "remove_duplicates", cfg.RemoveDuplicates); err != nil {
		return cfg, err
	}
	if cfg.RemoveOutliers, err = s.flagParam(c, "remove_outliers", cfg.RemoveOutliers); err != nil {
		return cfg, err
	}
	return cfg, nil
}
