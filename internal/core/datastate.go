package core

import "github.com/pankaj1920/shop/internal/model"

// Kind tags the variant held by a DataState.
type Kind int

const (
	KindNetworkStatus Kind = iota
	KindLoading
	KindData
	KindResponse
)

func (k Kind) String() string {
	switch k {
	case KindNetworkStatus:
		return "network-status"
	case KindLoading:
		return "loading"
	case KindData:
		return "data"
	case KindResponse:
		return "response"
	default:
		return "unknown"
	}
}

// DataState is one staged value emitted by an interactor. Only the fields
// belonging to Kind are meaningful.
type DataState[T any] struct {
	Kind Kind

	// NetworkState is set for KindNetworkStatus.
	NetworkState model.NetworkState

	// ProgressBarState is set for KindLoading.
	ProgressBarState model.ProgressBarState

	// Data is set for KindData when HasData is true.
	Data    T
	HasData bool

	// UIComponent is set for KindResponse.
	UIComponent model.UIComponent
}

// NetworkStatus reports connectivity observed while executing.
func NetworkStatus[T any](s model.NetworkState) DataState[T] {
	return DataState[T]{Kind: KindNetworkStatus, NetworkState: s}
}

// Loading reports progress. Interactors send an active state first and
// ProgressIdle last.
func Loading[T any](p model.ProgressBarState) DataState[T] {
	return DataState[T]{Kind: KindLoading, ProgressBarState: p}
}

// Data carries a successful payload.
func Data[T any](v T) DataState[T] {
	return DataState[T]{Kind: KindData, Data: v, HasData: true}
}

// NoData is a successful result without a payload.
func NoData[T any]() DataState[T] {
	return DataState[T]{Kind: KindData}
}

// Response carries a notification, usually a failure.
func Response[T any](c model.UIComponent) DataState[T] {
	return DataState[T]{Kind: KindResponse, UIComponent: c}
}
