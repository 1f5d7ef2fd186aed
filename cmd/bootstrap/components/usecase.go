package components

import (
	"venue-booking/internal/domain/booking"
	"venue-booking/internal/pkg/clock"
	"venue-booking/internal/usecase/commands"
	"venue-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		fx.Annotate(
			booking.NewStandardPriceCalculator,
			fx.As(new(booking.PriceCalculator)),
		),
		booking.NewFactory,
		commands.NewBookingCommands,
		queries.NewBookingQueries,
		queries.NewAvailabilityQueries,
	),
)
