package excel

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// FileType identifies a supported upload format
type FileType string

const (
	FileTypeCSV  FileType = "csv"
	FileTypeXLSX FileType = "xlsx"
)

var (
	// ErrUnsupportedFormat is returned for extensions other than .csv and .xlsx
	ErrUnsupportedFormat = errors.New("invalid file format, please upload CSV or Excel files")
	// ErrUnreadable is returned when the content cannot be decoded
	ErrUnreadable = errors.New("error reading file")
)

// DetectFileType resolves the upload format from the file name
func DetectFileType(filename string) (FileType, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FileTypeCSV, nil
	case ".xlsx", ".xlsm":
		return FileTypeXLSX, nil
	case ".xls":
		// excelize only reads OOXML workbooks
		return "", fmt.Errorf("%w: legacy .xls workbooks are not supported, save as .xlsx", ErrUnsupportedFormat)
	default:
		return "", ErrUnsupportedFormat
	}
}
