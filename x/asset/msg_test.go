package asset

import (
	"strings"
	"testing"

	"github.com/iov-one/weave-market/weavetest"
	. "github.com/smartystreets/goconvey/convey"
)

func TestIssueMsg(t *testing.T) {
	holder := weavetest.NewCondition().Address()

	Convey("Test issue msg validation", t, func() {
		msg := IssueMsg{ID: []byte("asdf"), Holder: holder, URI: "ipfs://asdf"}

		Convey("Happy flow", func() {
			So(msg.Validate(), ShouldBeNil)
		})
		Convey("Invalid id", func() {
			msg.ID = []byte("as")
			So(msg.Validate(), ShouldNotBeNil)
			msg.ID = []byte("with space")
			So(msg.Validate(), ShouldNotBeNil)
		})
		Convey("Invalid holder", func() {
			msg.Holder = nil
			So(msg.Validate(), ShouldNotBeNil)
		})
		Convey("Too long uri", func() {
			msg.URI = strings.Repeat("u", maxURILength+1)
			So(msg.Validate(), ShouldNotBeNil)
		})
		Convey("Serialization", func() {
			raw, err := msg.Marshal()
			So(err, ShouldBeNil)
			var got IssueMsg
			So(got.Unmarshal(raw), ShouldBeNil)
			So(got, ShouldResemble, msg)
		})
	})
}

func TestTransferMsg(t *testing.T) {
	dest := weavetest.NewCondition().Address()

	Convey("Test transfer msg validation", t, func() {
		msg := TransferMsg{ID: []byte("asdf"), Destination: dest}

		Convey("Happy flow", func() {
			So(msg.Validate(), ShouldBeNil)
			So(msg.Path(), ShouldEqual, "asset/transfer")
		})
		Convey("Invalid id", func() {
			msg.ID = nil
			So(msg.Validate(), ShouldNotBeNil)
		})
		Convey("Invalid destination", func() {
			msg.Destination = dest[:3]
			So(msg.Validate(), ShouldNotBeNil)
		})
	})
}
