package query

import (
	"context"

	"github.com/goodnatureofminers/tezwatch-backend/internal/model"
	"github.com/goodnatureofminers/tezwatch-backend/internal/poller"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Store is the read side of the read model.
	Store interface {
		ListNodes(offset, limit int) ([]model.NodeRecord, int, error)
		ListBakers(offset, limit int) ([]model.BakerRecord, int, error)
		NetworkInfo() (model.NetworkInfo, bool, error)
		Counts() (nodes, bakers int, err error)
	}
	SettingsRepository interface {
		Get(ctx context.Context, namespace string) (model.Settings, bool, error)
		Put(ctx context.Context, s model.Settings) (model.Settings, error)
	}
	TaskLister interface {
		Status() []poller.TaskStatus
	}
)
