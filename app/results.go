package app

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/errors"
)

// ResultSet holds the keys or the values returned by a query. A query
// response carries one result set for the keys and one for the values, both of
// the same length.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3"`
}

type wireResultSet ResultSet

func (m *wireResultSet) Reset()         { *m = wireResultSet{} }
func (m *wireResultSet) String() string { return proto.CompactTextString(m) }
func (*wireResultSet) ProtoMessage()    {}

func (r *ResultSet) Marshal() ([]byte, error) { return proto.Marshal((*wireResultSet)(r)) }

func (r *ResultSet) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*wireResultSet)(r))
}

// ResultsFromKeys collects the keys of models.
func ResultsFromKeys(models []weave.Model) *ResultSet {
	return collect(models, func(m weave.Model) []byte { return m.Key })
}

// ResultsFromValues collects the values of models.
func ResultsFromValues(models []weave.Model) *ResultSet {
	return collect(models, func(m weave.Model) []byte { return m.Value })
}

func collect(models []weave.Model, pick func(weave.Model) []byte) *ResultSet {
	rs := &ResultSet{Results: make([][]byte, len(models))}
	for i, m := range models {
		rs.Results[i] = pick(m)
	}
	return rs
}

// JoinResults pairs the keys and values of a query response back into
// models.
func JoinResults(keys, values *ResultSet) ([]weave.Model, error) {
	if len(keys.Results) != len(values.Results) {
		return nil, errors.Wrapf(errors.ErrState, "%d keys, %d values", len(keys.Results), len(values.Results))
	}
	models := make([]weave.Model, len(keys.Results))
	for i, k := range keys.Results {
		models[i] = weave.Pair(k, values.Results[i])
	}
	return models, nil
}
