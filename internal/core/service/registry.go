package service

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ceesios/vault-auth-ldap/internal/core/ports"
	"github.com/ceesios/vault-auth-ldap/internal/errors"
)

type ComponentRegistry struct {
	mu        sync.RWMutex
	sources   map[string]ports.DesiredSource
	reporters map[string]ports.Reporter
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		sources:   make(map[string]ports.DesiredSource),
		reporters: make(map[string]ports.Reporter),
	}
}

func (r *ComponentRegistry) RegisterSource(source ports.DesiredSource) error {
	if source == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil desired state source")
	}
	sourceType := source.Type()
	if sourceType == "" {
		return errors.New(errors.CodeInternal, "desired state source type cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sources[sourceType]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("desired state source type '%s' already registered", sourceType))
	}
	r.sources[sourceType] = source
	return nil
}

func (r *ComponentRegistry) GetSource(sourceType string) (ports.DesiredSource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	source, exists := r.sources[sourceType]
	if !exists {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("desired state source type '%s' not found", sourceType),
			fmt.Sprintf("Supported: %v", sortedKeys(r.sources)))
	}
	return source, nil
}

func (r *ComponentRegistry) RegisterReporter(reporter ports.Reporter) error {
	if reporter == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil reporter")
	}
	reporterType := reporter.Type()
	if reporterType == "" {
		return errors.New(errors.CodeInternal, "reporter type cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reporters[reporterType]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("reporter type '%s' already registered", reporterType))
	}
	r.reporters[reporterType] = reporter
	return nil
}

func (r *ComponentRegistry) GetReporter(reporterType string) (ports.Reporter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reporter, exists := r.reporters[reporterType]
	if !exists {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("reporter type '%s' not found", reporterType),
			fmt.Sprintf("Supported: %v", sortedKeys(r.reporters)))
	}
	return reporter, nil
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
