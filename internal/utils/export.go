package utils

import (
	"fmt"
	"time"
)

// ExportFilename builds a timestamped filename for a data export
func ExportFilename(dataType, ext string) string {
	return fmt.Sprintf("%s_export_%s.%s", dataType, time.Now().Format("2006-01-02_15-04-05"), ext)
}
