package config

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// QuestionAnalyticsKey returns the cache key for the question-bank analytics summary.
func (r *CacheKeyStruct) QuestionAnalyticsKey() string {
	return "questions:analytics:summary"
}

var CacheKey = NewCacheKeyStruct()
