package dto

// SyllabusTopicResponse is a single topic.
type SyllabusTopicResponse struct {
	Name      string `json:"name"`
	IsCovered bool   `json:"is_covered"`
}

// SyllabusModuleResponse is a module with derived topic coverage.
type SyllabusModuleResponse struct {
	Name          string                  `json:"name"`
	Completion    int                     `json:"completion"`
	Topics        []SyllabusTopicResponse `json:"topics"`
	CoveredTopics int                     `json:"covered_topics"`
	TotalTopics   int                     `json:"total_topics"`
	TopicCoverage int                     `json:"topic_coverage"`
}

// SubjectSyllabusResponse groups modules of one subject.
type SubjectSyllabusResponse struct {
	SubjectCode       string                   `json:"subject_code"`
	Modules           []SyllabusModuleResponse `json:"modules"`
	OverallCompletion int                      `json:"overall_completion"`
}
