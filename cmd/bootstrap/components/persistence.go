package components

import (
	"coworkhub/internal/infra/db"
	"coworkhub/internal/infra/readstore"
	"coworkhub/internal/infra/rediscache"
	"coworkhub/internal/infra/repository"
	"coworkhub/internal/infra/uow"
	"coworkhub/internal/pkg/config"
	"coworkhub/internal/usecase/queries"
	"coworkhub/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewQuerier,
		uow.NewPostgresUoW,
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(shared.UserRepository)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewSpaceBookingStore,
			fx.As(new(queries.SpaceBookingStore)),
		),
		NewSpaceReadStore,
	),
)

func NewQuerier(pool *pgxpool.Pool) db.Querier {
	return pool
}

// NewSpaceReadStore layers the Redis cache over the Postgres store when
// a Redis client is available.
func NewSpaceReadStore(q db.Querier, client *redis.Client, cfg config.Config) queries.SpaceReadStore {
	inner := readstore.NewSpaceReadStore(q)
	if client == nil {
		return inner
	}
	return rediscache.NewSpaceReadStore(inner, client, cfg.Redis.RulesTTL)
}
