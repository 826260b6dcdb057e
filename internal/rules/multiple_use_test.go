package rules

import "testing"

func TestMultipleUse(t *testing.T) {
	runCases(t, MultipleUse(), []fixCase{
		{"split", "use A, B as C;", "use A;\nuse B as C;"},
		{"qualified", `use Foo\Bar, Foo\Baz;`, "use Foo\\Bar;\nuse Foo\\Baz;"},
		{"indented", "<?php\nnamespace X {\n    use A, B;\n}", "<?php\nnamespace X {\n    use A;\n    use B;\n}"},
		{"indented after open tag", "<?php\n    use A, B as C;\n", "<?php\n    use A;\n    use B as C;\n"},
		{"functions", "use function a, b;", "use function a;\nuse function b;"},
		{"multi line list", "use A,\n    B;", "use A;\nuse B;"},
		{"single", "use A;", "use A;"},
		{"group", `use A\{B, C};`, `use A\{B, C};`},
		{"closure", "$f = function () use ($a, $b) {};", "$f = function () use ($a, $b) {};"},
		{"trait list", "class A {\n    use B, C;\n}", "class A {\n    use B, C;\n}"},
	})
}
