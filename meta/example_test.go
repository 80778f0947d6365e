package meta_test

import (
	"fmt"

	"github.com/coregx/rematch/meta"
)

func ExampleCompile() {
	engine, err := meta.Compile(`(abc|def).*ghi`)
	if err != nil {
		panic(err)
	}
	m := engine.Search([]byte("prefix def xxx ghi suffix"))
	fmt.Println(engine.Strategy(), m.Begin, m.End)
	// Output: UseLookback 7 18
}

func ExampleEngine_Match() {
	engine := mustEngine(`[0-9]+\.[0-9]+\.[0-9]+\.[0-9]+`)
	fmt.Println(engine.Match([]byte("192.168.1.1")))
	fmt.Println(engine.Match([]byte("192.168.1.")))
	// Output:
	// true
	// false
}

func ExampleEngine_SearchAt() {
	engine := mustEngine(`Tom|Sawyer|Huckleberry|Finn`)
	input := []byte("Mark Twain wrote Huckleberry Finn")
	m := engine.SearchAt(input, 18)
	fmt.Printf("%s %s\n", m, m.Bytes(input))
	// Output: [29,33) Finn
}

func ExampleCompileWithConfig() {
	config := meta.DefaultConfig()
	config.EnableBitNFA = false
	engine, err := meta.CompileWithConfig(`Tom|Sawyer|Huckleberry|Finn`, config)
	if err != nil {
		panic(err)
	}
	fmt.Println(engine.Shape(), engine.Strategy())
	// Output: alternation UseLookback
}

func ExampleClassify() {
	for _, p := range []string{`[0-9]+\.[0-9]+`, `cat|dog|bird`, `a+a`} {
		fmt.Println(meta.Classify(mustEngine(p).Pattern()))
	}
	// Output:
	// repetition
	// alternation
	// other
}

func mustEngine(pattern string) *meta.Engine {
	engine, err := meta.Compile(pattern)
	if err != nil {
		panic(err)
	}
	return engine
}
