package pipeline

// Stage identifies where a run is in the transform sequence.
type Stage int

const (
	StageNotStarted Stage = iota
	StageMapping
	StageEnriching
	StageTimezoneConverting
	StageDeduplicating
	StageCompleted
	StageFailed
)

var stageNames = map[Stage]string{
	StageNotStarted:         "not_started",
	StageMapping:            "mapping",
	StageEnriching:          "enriching",
	StageTimezoneConverting: "timezone_converting",
	StageDeduplicating:      "deduplicating",
	StageCompleted:          "completed",
	StageFailed:             "failed",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}
