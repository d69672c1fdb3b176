package comment

import (
	"github.com/pankaj1920/shop/internal/core"
	"github.com/pankaj1920/shop/internal/model"
)

// State is the snapshot the comment screen renders from.
type State struct {
	ProductID             int
	Comments              []model.Comment
	ProgressBarState      model.ProgressBarState
	NetworkState          model.NetworkState
	AddCommentDialogState model.UIComponentState
	ErrorQueue            core.MessageQueue
}
