// Package mocks provides centralized mock implementations for testing.
//
// Each mock exposes function fields for customizable behavior and falls back
// to a simple in-memory implementation when a field is left nil:
//
//	taskStore := mocks.NewMockTaskStore()
//	taskStore.ListFn = func(ctx context.Context) ([]domain.Task, error) {
//	    return nil, errors.New("database down")
//	}
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Implement the mock struct with function fields for each interface method
//  3. Document any helper methods or special functionality
package mocks
