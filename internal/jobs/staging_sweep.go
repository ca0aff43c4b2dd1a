package jobs

import (
	"time"

	"album-studio/internal/logger"
)

type sweeper interface {
	Sweep(maxAge time.Duration) int
}

// StagingSweepJob убирает из очереди загрузок давно завершённые файлы.
type StagingSweepJob struct {
	stager    sweeper
	retention time.Duration
}

func NewStagingSweepJob(stager sweeper, retention time.Duration) *StagingSweepJob {
	return &StagingSweepJob{stager: stager, retention: retention}
}

func (j *StagingSweepJob) Run() {
	if n := j.stager.Sweep(j.retention); n > 0 {
		logger.Infof("staging sweep: removed %d completed uploads older than %s", n, j.retention)
	}
}
