package export

import (
	"strconv"
	"time"
)

// DefaultProduct is the product name used in export file names.
const DefaultProduct = "FilmFrame"

// BatchName returns "<product>_BATCH_<index><ext>". index is 1-based.
func BatchName(product string, index int, f Format) string {
	return product + "_BATCH_" + strconv.Itoa(index) + f.Ext()
}

// ExportName returns "<product>_EXPORT_<unix millis><ext>".
func ExportName(product string, t time.Time, f Format) string {
	return product + "_EXPORT_" + strconv.FormatInt(t.UnixMilli(), 10) + f.Ext()
}
