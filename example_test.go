// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bq_test

import (
	"fmt"

	"code.hybscloud.com/bq"
)

// ExampleNewBounded demonstrates blocking producer/consumer handoff.
func ExampleNewBounded() {
	q := bq.NewBounded[int](2)

	// Producer outruns the consumer; the small capacity applies
	// backpressure by blocking Enqueue until a slot frees up.
	go func() {
		for i := 1; i <= 5; i++ {
			v := i * 10
			q.Enqueue(&v)
		}
	}()

	for range 5 {
		v, _ := q.Dequeue()
		fmt.Println(v)
	}

	// Output:
	// 10
	// 20
	// 30
	// 40
	// 50
}

// ExampleNewJoinable demonstrates waiting for work completion rather
// than queue emptiness.
func ExampleNewJoinable() {
	q := bq.NewJoinable[int](4)
	sum := 0

	go func() { // Worker
		for range 3 {
			v, _ := q.Dequeue()
			sum += v
			q.TaskDone()
		}
	}()

	for _, v := range []int{1, 2, 3} {
		q.Enqueue(&v)
	}
	q.Join() // Returns once all three items are acknowledged

	fmt.Println("sum:", sum)

	// Output:
	// sum: 6
}

// ExampleNewGrowable demonstrates growth on overflow and the tolerated
// empty-dequeue signal.
func ExampleNewGrowable() {
	q := bq.NewGrowable[string](2)

	for _, s := range []string{"a", "b", "c"} {
		q.Enqueue(&s)
	}
	fmt.Println("capacity:", q.Cap()) // Doubled on the third enqueue

	for q.HasItem() {
		s, err := q.Dequeue()
		if bq.IsEmpty(err) {
			continue
		}
		fmt.Println(s)
	}

	// Output:
	// capacity: 4
	// a
	// b
	// c
}

// ExampleBuild demonstrates variant selection through the builder.
func ExampleBuild() {
	queues := []bq.Queue[int]{
		bq.Build[int](bq.New(64)),
		bq.Build[int](bq.New(64).Joinable()),
		bq.Build[int](bq.New(8).Growable().UnifiedLock()),
	}

	for _, q := range queues {
		v := 42
		q.Enqueue(&v)
		elem, _ := q.Dequeue()
		_, joinable := q.(bq.Joiner)
		fmt.Printf("%T: %d joinable=%v\n", q, elem, joinable)
	}

	// Output:
	// *bq.Bounded[int]: 42 joinable=false
	// *bq.Joinable[int]: 42 joinable=true
	// *bq.Growable[int]: 42 joinable=false
}
