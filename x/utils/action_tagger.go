package utils

import (
	weave "github.com/iov-one/weave-market"
)

const (
	// ActionKey tags every delivered transaction with its message path.
	ActionKey = "action"
	// AssetKey tags transactions whose message targets a single asset.
	AssetKey = "asset"
)

// assetMsg is implemented by messages about one asset.
type assetMsg interface {
	Asset() []byte
}

// ActionTagger tags successful deliveries so that clients can search or
// subscribe to them, for example every sale of an asset with
// "action='market/buy' AND asset='art-1'".
type ActionTagger struct{}

var _ weave.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver fails before calling next when the message cannot be read.
func (ActionTagger) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, weave.Tag{Key: []byte(ActionKey), Value: []byte(msg.Path())})
	if m, ok := msg.(assetMsg); ok {
		res.Tags = append(res.Tags, weave.Tag{Key: []byte(AssetKey), Value: m.Asset()})
	}
	return res, nil
}
