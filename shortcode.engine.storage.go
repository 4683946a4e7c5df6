package shortcode

import (
	"context"

	"go.uber.org/zap"
)

// LoadDefinitions registers every definition in storage with the engine and
// returns how many were registered. Loading stops at the first definition
// that fails to compile; the ones before it stay registered.
func (e *Engine) LoadDefinitions(ctx context.Context, storage DefinitionStorage) (int, error) {
	if storage == nil {
		return 0, &StorageError{Message: ErrMsgNilStorage}
	}

	defs, err := storage.List(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, def := range defs {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		if err := e.RegisterDefinition(def); err != nil {
			return count, err
		}
		count++
	}

	e.logger.Info(LogMsgDefinitionsLoaded, zap.Int(LogFieldCount, count))
	return count, nil
}

// RegisterStored fetches the named definition from storage and registers it.
func (e *Engine) RegisterStored(ctx context.Context, storage DefinitionStorage, name string) error {
	if storage == nil {
		return &StorageError{Message: ErrMsgNilStorage}
	}

	def, err := storage.Get(ctx, name)
	if err != nil {
		return err
	}
	return e.RegisterDefinition(def)
}

// SaveDefinition validates def, compiles its template, writes it to storage
// and registers it with the engine.
func (e *Engine) SaveDefinition(ctx context.Context, storage DefinitionStorage, def *Definition) error {
	if storage == nil {
		return &StorageError{Message: ErrMsgNilStorage}
	}

	// Compile before saving so a broken template never reaches storage
	if _, err := def.handler(e); err != nil {
		return err
	}
	if err := storage.Save(ctx, def); err != nil {
		return err
	}
	return e.RegisterDefinition(def)
}
