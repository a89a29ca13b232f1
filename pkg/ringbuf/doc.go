// Package ringbuf provides a generic fixed-capacity circular buffer with
// silent oldest-element overwrite.
//
// The buffer is designed for bounded histories where dropping the oldest
// entries is an accepted tradeoff: appending is O(1) in steady state, unlike a
// slice that shifts on every trim. Overwritten elements are discarded without
// notification; this is intentional bounded-memory behavior, not data loss to
// recover from.
//
// # Usage
//
//	import "github.com/dmitrymomot/chatkit/pkg/ringbuf"
//
//	buf, err := ringbuf.New[string](3)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	buf.Push("a")
//	buf.Push("b")
//	buf.Push("c")
//	buf.Push("d") // overwrites "a"
//
//	fmt.Println(buf.ToSlice()) // [b c d]
//
//	for item := range buf.All() {
//		fmt.Println(item) // oldest first
//	}
package ringbuf
