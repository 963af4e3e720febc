package instrument

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/yndnr/calllog-go/internal/telemetry/tracer"
)

// Record is the structured summary of one successful call.
// Field order is the serialized order.
type Record struct {
	Function    string         `json:"function"`
	Args        []any          `json:"args"`
	Kwargs      map[string]any `json:"kwargs"`
	Duration    string         `json:"duration"`
	CPUTime     string         `json:"cpu_time"`
	MemoryUsage string         `json:"memory_usage"`
	Thread      string         `json:"thread"`
}

// newRecord builds a record from already masked arguments.
func newRecord(function string, args []any, kwargs map[string]any, m tracer.Measurement, thread string) Record {
	if args == nil {
		args = []any{}
	}
	if kwargs == nil {
		kwargs = map[string]any{}
	}
	return Record{
		Function:    function,
		Args:        args,
		Kwargs:      kwargs,
		Duration:    FormatDuration(m.Duration),
		CPUTime:     strconv.FormatFloat(m.CPUSeconds, 'f', 2, 64),
		MemoryUsage: strconv.FormatFloat(m.MemoryPercent, 'f', 2, 64) + "%",
		Thread:      thread,
	}
}

// String returns the record as a single JSON line. It never fails: if
// encoding does, a fmt rendering of the same fields is returned.
func (r Record) String() string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return fmt.Sprintf("{function:%s args:%v kwargs:%v duration:%s cpu_time:%s memory_usage:%s thread:%s}",
			r.Function, r.Args, r.Kwargs, r.Duration, r.CPUTime, r.MemoryUsage, r.Thread)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
