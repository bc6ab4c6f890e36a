package pipelinequeue

// DailyScoringJob triggers one full daily scoring pass. Carries no
// arguments; uniqueness by args keeps overlapping runs from stacking up.
type DailyScoringJob struct{}

// Kind returns the job type identifier for River.
func (DailyScoringJob) Kind() string { return "daily_scoring" }

// WeeklyTieringJob triggers one full weekly tiering pass.
type WeeklyTieringJob struct{}

// Kind returns the job type identifier for River.
func (WeeklyTieringJob) Kind() string { return "weekly_tiering" }
