// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Stage names one step of the answer pipeline.
type Stage string

const (
	StageValidating Stage = "validating"
	StageSearching  Stage = "searching"
	StageAssembling Stage = "assembling"
	StageGenerating Stage = "generating"
	StageDone       Stage = "done"
)

// FailureKind categorizes why a pipeline run stopped early.
type FailureKind string

const (
	FailureEmptyQuery FailureKind = "empty_query"
	FailureSearch     FailureKind = "search_failure"
	FailureContext    FailureKind = "context_failure"
	FailureGeneration FailureKind = "generation_failure"
)

// Failure describes the stage at which a run stopped and a message telling
// the user what to do about it.
type Failure struct {
	Kind    FailureKind `json:"kind" yaml:"kind"`
	Stage   Stage       `json:"stage" yaml:"stage"`
	Message string      `json:"message" yaml:"message"`
}

// PipelineResult is the outcome of one pipeline run. Exactly one of the
// variants is populated: on success Failure is nil and Answer is set; on
// failure Failure is set and Answer is empty. SearchResults is attached
// whenever the search stage succeeded.
type PipelineResult struct {
	Query         string           `json:"query" yaml:"query"`
	SearchResults *SearchResultSet `json:"search_results,omitempty" yaml:"search_results,omitempty"`
	Answer        string           `json:"answer,omitempty" yaml:"answer,omitempty"`
	Failure       *Failure         `json:"failure,omitempty" yaml:"failure,omitempty"`
}

// OK reports whether the run reached the done stage.
func (r PipelineResult) OK() bool {
	return r.Failure == nil
}

// Err returns the failure message, or "" on success.
func (r PipelineResult) Err() string {
	if r.Failure == nil {
		return ""
	}
	return r.Failure.Message
}
