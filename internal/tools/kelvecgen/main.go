// kelvecgen emits a deterministic CESR stream vector: an inception, a
// rotation, and an interaction with representative attachment groups.
// Useful as a kelpd fixture and for eyeballing parser output.
package main

import (
	"fmt"
	"os"

	"kelp.dev/kelp/cidutil"
	"kelp.dev/kelp/kel"
	"kelp.dev/kelp/testkit"
)

func main() {
	aid := testkit.AID(0xA1)

	icp := testkit.MustKeyEvent(testkit.EventOpts{
		Type: "icp", AID: aid, SN: 0,
		Keys: []string{testkit.AID(0xA2)},
	})
	rot := testkit.MustKeyEvent(testkit.EventOpts{
		Type: "rot", AID: aid, SN: 1,
		Prior: kel.Parse(icp)[0].Digest(),
		Keys:  []string{testkit.AID(0xA3)},
	})
	ixn := testkit.MustKeyEvent(testkit.EventOpts{
		Type: "ixn", AID: aid, SN: 2,
		Prior:   kel.Parse(rot)[0].Digest(),
		Anchors: []map[string]any{{"i": testkit.AID(0xA4), "s": "0", "d": kel.Parse(icp)[0].Digest()}},
	})

	stream := testkit.Stream(
		icp, testkit.ControllerSigs(2), testkit.ReceiptCouples(1),
		rot, testkit.ControllerSigs(2), testkit.SealSourceCouples(1),
		ixn, testkit.ControllerSigs(1), testkit.ReplayCouples(1),
	)

	id, err := cidutil.StreamCID(stream)
	if err != nil {
		panic(err)
	}
	fmt.Fprintf(os.Stderr, "AID=%s\n", aid)
	fmt.Fprintf(os.Stderr, "CID=%s\n", id)
	fmt.Fprintf(os.Stderr, "events=%d\n", len(kel.Parse(stream)))
	_, _ = os.Stdout.Write(stream)
}
