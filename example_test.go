package uubed_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/uubed"
	"github.com/hupe1980/uubed/errs"
)

func ExampleQ64Encode() {
	fmt.Println(uubed.Q64Encode([]byte{0x12, 0x34}))
	// Output: BSj0
}

func ExampleQ64Decode() {
	data, err := uubed.Q64Decode("BSj0")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%x\n", data)

	// A symbol from the wrong alphabet is rejected.
	_, err = uubed.Q64Decode("BSjA")
	fmt.Println(uubed.ErrorCode(err))
	// Output:
	// 1234
	// q64_error
}

func ExampleTopKQ64() {
	top, err := uubed.TopKQ64([]byte{10, 50, 30, 80, 20, 90, 40, 70}, 3)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(top == uubed.Q64Encode([]byte{3, 5, 7}))
	// Output: true
}

func ExampleZOrderQ64() {
	fmt.Println(uubed.ZOrderQ64(nil))
	// Output: AQgwAQgw
}

func ExampleEncoder() {
	enc := uubed.NewEncoder(uubed.WithPlanes(64))

	hash, err := enc.Encode(context.Background(), uubed.MethodSimHash, []byte{1, 2, 3, 4})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(len(hash))

	_, err = enc.Encode(context.Background(), uubed.MethodSimHash, nil)
	fmt.Println(errs.KindOf(err))
	// Output:
	// 16
	// empty input
}

func ExampleBatchProcessor() {
	p := uubed.NewBatchProcessor(uubed.WithThreads(2))

	keys, err := p.EncodeZOrder(context.Background(), [][]byte{{0}, {0xFF}})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(keys)
	// Output: [AQgwAQgw AQgwAQgz]
}
