package interfaces

import (
	"context"

	"github.com/m-mizutani/relmon/pkg/domain/model"
)

// WatchUseCase is the surface the HTTP controller needs from the watcher
type WatchUseCase interface {
	// Trigger asks the scheduler to check repo out of band. It returns false
	// when repo is not watched or the trigger queue is full.
	Trigger(ctx context.Context, repo string) bool

	// Status returns a snapshot of scheduler progress
	Status() model.WatchStatus

	// Versions lists stored versions of both channels
	Versions(ctx context.Context) (*model.VersionsResponse, error)
}
