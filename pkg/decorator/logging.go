package decorator

import (
	"context"
	"fmt"
	"strings"

	"github.com/architeacher/device-registry/pkg/logger"
)

func prettyPrint(v any) string {
	return fmt.Sprintf("%+v", v)
}

type (
	commandLoggingDecorator[C Command, R any] struct {
		base   CommandHandler[C, R]
		logger logger.Logger
	}

	queryLoggingDecorator[Q Query, R Result] struct {
		base   QueryHandler[Q, R]
		logger logger.Logger
	}
)

func (d commandLoggingDecorator[C, R]) Handle(ctx context.Context, cmd C) (result R, err error) {
	handlerLogger := d.logger.WithContext(ctx).With().
		Str("command", generateActionName(cmd)).
		Str("command_body", strings.TrimSpace(prettyPrint(cmd))).
		Logger()

	handlerLogger.Debug().Msg("executing command")

	defer func() {
		if err == nil {
			handlerLogger.Info().Msg("command executed successfully")

			return
		}

		handlerLogger.Error().Err(err).Msg("failed to execute command")
	}()

	return d.base.Handle(ctx, cmd)
}

func (d queryLoggingDecorator[Q, R]) Execute(ctx context.Context, query Q) (result R, err error) {
	handlerLogger := d.logger.WithContext(ctx).With().
		Str("query", generateActionName(query)).
		Str("query_body", strings.TrimSpace(prettyPrint(query))).
		Logger()

	handlerLogger.Debug().Msg("executing query")

	defer func() {
		if err == nil {
			handlerLogger.Debug().Msg("query executed successfully")

			return
		}

		handlerLogger.Error().Err(err).Msg("failed to execute query")
	}()

	return d.base.Execute(ctx, query)
}
