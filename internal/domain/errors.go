package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifica as falhas do painel; nenhuma delas é fatal
type ErrorKind string

const (
	ErrorKindResolution ErrorKind = "resolution"
	ErrorKindFetch      ErrorKind = "fetch"
	ErrorKindSync       ErrorKind = "sync"
)

var (
	ErrNoAccount        = errors.New("no resolvable account")
	ErrCampaignsFetch   = errors.New("error fetching campaigns")
	ErrInsightsFetch    = errors.New("error fetching insight rows")
	ErrGroupFetch       = errors.New("error fetching account group")
	ErrSnapshotCompute  = errors.New("error computing snapshot")
	ErrSyncFailed       = errors.New("remote sync failed")
	ErrSyncStateStorage = errors.New("sync state storage error")
)

// DashboardError carrega o contexto de uma falha degradada
type DashboardError struct {
	Kind      ErrorKind
	Err       error
	AccountID string
	Details   string
}

func (e *DashboardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Err.Error(), e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Err.Error())
}

func (e *DashboardError) Unwrap() error {
	return e.Err
}

func NewFetchError(err error, details string) *DashboardError {
	return &DashboardError{Kind: ErrorKindFetch, Err: err, Details: details}
}

func NewSyncError(err error, accountID string, details string) *DashboardError {
	return &DashboardError{Kind: ErrorKindSync, Err: err, AccountID: accountID, Details: details}
}

func NewResolutionError(details string) *DashboardError {
	return &DashboardError{Kind: ErrorKindResolution, Err: ErrNoAccount, Details: details}
}

// IsKind verifica o tipo de um erro do painel ao longo da cadeia de wrapping
func IsKind(err error, kind ErrorKind) bool {
	var dErr *DashboardError
	if errors.As(err, &dErr) {
		return dErr.Kind == kind
	}
	return false
}
