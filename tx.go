package weave

import (
	"reflect"

	"github.com/iov-one/weave-market/errors"
)

// Msg is the request of a single state transition, like listing an asset
// or buying one. Authentication lives in the Tx that carries it.
type Msg interface {
	Persistent

	// Path routes the message to its handler. It matches
	// [0-9A-Za-z_\-/]+, usually "<extension>/<action>".
	Path() string

	// Validate checks everything that can be checked without reading
	// the state.
	Validate() error
}

// Marshaller serializes a value, possibly validating it first.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent can be serialized and deserialized. Unmarshal usually needs a
// pointer receiver, so code that only writes should ask for a Marshaller.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx is what a client submits: one message plus whatever the decorators
// need, such as signatures. The application defines the concrete type.
type Tx interface {
	Persistent
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message of tx, "(missing)" when there is
// none.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// TxDecoder deserializes a transaction received from the network.
type TxDecoder func(txBytes []byte) (Tx, error)

// LoadMsg copies the message of tx into destination, a pointer to the
// expected message type, and validates it.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "transaction has no message")
	}

	// Destination must be a pointer to the same type as the message.
	msgVal := reflect.ValueOf(msg)
	dstVal := reflect.ValueOf(destination)
	if dstVal.Kind() != reflect.Ptr || dstVal.IsNil() {
		return errors.Wrap(errors.ErrType, "destination must be a non nil pointer")
	}
	if msgVal.Kind() == reflect.Ptr {
		msgVal = msgVal.Elem()
	}
	if !msgVal.Type().AssignableTo(dstVal.Elem().Type()) {
		return errors.Wrapf(errors.ErrType, "want %T message, got %T", destination, msg)
	}
	dstVal.Elem().Set(msgVal)

	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}
