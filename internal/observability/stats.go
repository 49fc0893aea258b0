package observability

import (
	"sync"
	"sync/atomic"
)

type StatsSnapshot struct {
	SearchesRun       uint64            `json:"searches_run"`
	RecordsMapped     uint64            `json:"records_mapped"`
	AICalls           uint64            `json:"ai_calls"`
	ErrorsTotal       uint64            `json:"errors_total"`
	RecordsFiltered   map[string]uint64 `json:"records_filtered,omitempty"`
	AICallsByModel    map[string]uint64 `json:"ai_calls_by_model,omitempty"`
	ErrorsByType      map[string]uint64 `json:"errors_by_type,omitempty"`
	ErrorsByComponent map[string]uint64 `json:"errors_by_component,omitempty"`
}

var (
	searchesRun   uint64
	recordsMapped uint64
	aiCalls       uint64
	errorsTotal   uint64

	statsMu           sync.Mutex
	recordsFiltered   = map[string]uint64{}
	aiCallsByModel    = map[string]uint64{}
	errorsByType      = map[string]uint64{}
	errorsByComponent = map[string]uint64{}
)

func IncSearch() {
	atomic.AddUint64(&searchesRun, 1)
}

func IncRecordsMapped() {
	atomic.AddUint64(&recordsMapped, 1)
}

func IncAICall(model string) {
	if model == "" {
		model = "unknown"
	}
	atomic.AddUint64(&aiCalls, 1)
	statsMu.Lock()
	aiCallsByModel[model]++
	statsMu.Unlock()
}

func IncRecordsFiltered(stage string) {
	if stage == "" {
		stage = "unknown"
	}
	statsMu.Lock()
	recordsFiltered[stage]++
	statsMu.Unlock()
}

func IncError(errType, component string) {
	if errType == "" {
		errType = "unknown"
	}
	if component == "" {
		component = "unknown"
	}
	atomic.AddUint64(&errorsTotal, 1)
	statsMu.Lock()
	errorsByType[errType]++
	errorsByComponent[component]++
	statsMu.Unlock()
}

func Snapshot() StatsSnapshot {
	statsMu.Lock()
	filteredCopy := copyMap(recordsFiltered)
	aiModelCopy := copyMap(aiCallsByModel)
	errorsTypeCopy := copyMap(errorsByType)
	errorsComponentCopy := copyMap(errorsByComponent)
	statsMu.Unlock()

	return StatsSnapshot{
		SearchesRun:       atomic.LoadUint64(&searchesRun),
		RecordsMapped:     atomic.LoadUint64(&recordsMapped),
		AICalls:           atomic.LoadUint64(&aiCalls),
		ErrorsTotal:       atomic.LoadUint64(&errorsTotal),
		RecordsFiltered:   filteredCopy,
		AICallsByModel:    aiModelCopy,
		ErrorsByType:      errorsTypeCopy,
		ErrorsByComponent: errorsComponentCopy,
	}
}

func copyMap(src map[string]uint64) map[string]uint64 {
	if len(src) == 0 {
		return map[string]uint64{}
	}
	out := make(map[string]uint64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
