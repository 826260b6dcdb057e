package rules

import "testing"

func TestVisibilityProperties(t *testing.T) {
	runCases(t, Visibility(), []fixCase{{
		name: "properties",
		in: `<?php
class Foo {
    public $var;
    protected $var_foo;
    private $FooBar;
    static public $var;
    static protected $var_foo;
    static private $FooBar;
    public static $var;
    protected static $var_foo;
    private static $FooBar;
    private static
    $FooBar;
    var $old = 'foo';
}`,
		want: `<?php
class Foo {
    public $var;
    protected $var_foo;
    private $FooBar;
    public static $var;
    protected static $var_foo;
    private static $FooBar;
    public static $var;
    protected static $var_foo;
    private static $FooBar;
    private static $FooBar;
    public $old = 'foo';
}`,
	}, {
		name: "comma separated",
		in: `<?php
class Foo
{
    $foo;
    private $foo2;
    protected $bar1, $bar2;
    public $baz1 = null, $baz2, $baz3 = false;
}`,
		want: `<?php
class Foo
{
    public $foo;
    private $foo2;
    protected $bar1, $bar2;
    public $baz1 = null, $baz2, $baz3 = false;
}`,
	}, {
		name: "typed and readonly",
		in:   "<?php\nclass A {\n    readonly private ?int $a;\n    static \\Foo\\Bar $b;\n}",
		want: "<?php\nclass A {\n    private readonly ?int $a;\n    public static \\Foo\\Bar $b;\n}",
	}})
}

func TestVisibilityMethods(t *testing.T) {
	runCases(t, Visibility(), []fixCase{{
		name: "methods",
		in: `<?php
abstract class Foo {
    public function foo1() {}
    function foo2() {}
    protected function foo3() {}
    protected
    abstract function foo4() {};
    private function foo5() {}
    final public function foo6() {}
    abstract public function foo7();
    public final function foo8() {}
    public abstract function foo9();
    public static function fooA() {}
    public static
    function fooD() {}
    final static function fooE() {}
    abstract function fooF();
        function fooG ($foo) {}
        function fooH() {
            static $foo;
            $bar = function($baz) {};
        }
}`,
		want: `<?php
abstract class Foo {
    public function foo1() {}
    public function foo2() {}
    protected function foo3() {}
    abstract protected function foo4() {};
    private function foo5() {}
    final public function foo6() {}
    abstract public function foo7();
    final public function foo8() {}
    abstract public function foo9();
    public static function fooA() {}
    public static function fooD() {}
    final public static function fooE() {}
    abstract public function fooF();
        public function fooG ($foo) {}
        public function fooH() {
            static $foo;
            $bar = function($baz) {};
        }
}`,
	}, {
		name: "interface",
		in:   "<?php\ninterface I {\n    function run();\n    const X = 1;\n}",
		want: "<?php\ninterface I {\n    public function run();\n    const X = 1;\n}",
	}, {
		name: "trait use and constants kept",
		in:   "<?php\nclass A {\n    use T;\n    const B = 1;\n    function c() {}\n}",
		want: "<?php\nclass A {\n    use T;\n    const B = 1;\n    public function c() {}\n}",
	}, {
		name: "anonymous class",
		in:   "<?php\n$a = new class {\n    var $x;\n};",
		want: "<?php\n$a = new class {\n    public $x;\n};",
	}})
}

func TestVisibilityLeavesCodeOutsideClasses(t *testing.T) {
	keep := []string{
		"<?php\nfunction foo() {\n    static $foo;\n}",
		"<?php\nfunction foo() {\n    static $class;\n    $interface = 'foo';\n    $trait = 'bar';\n}",
		"<?php\nif (!function_exists('foo')) {\n    function foo($arg)\n    {\n        return $arg;\n    }\n}",
		"<?php\n/* class <= this is just a stop-word */\nif (!function_exists('foo')) {\n    function foo($arg)\n    {\n        return $arg;\n    }\n}",
		"<?php\nif (!function_exists('foo')) {\n    function foo($arg)\n    {\n    ?>\n        <div class=\"test\"></div>\n    <?php\n        return $arg;\n    }\n}",
		"<?php\nif (!function_exists('foo')) {\n    function foo($arg)\n    {\n        return 'she has class right?';\n    }\n}",
		"<?php\n\ncomment_class();\n\nif (!function_exists('foo')) {\n    function foo($arg)\n    {\n        return $arg;\n    }\n}",
		"<?php\n\nclass Foo\n{\n    public $foo;\n}\n\nif (!function_exists('bar')) {\n    function bar()\n    {\n        return 'bar';\n    }\n}",
		"<?php\n\nclass Foo\n{\n    private $bar;\n    public function foo()\n    {\n        $foo = \"foo\";\n        $fooA = \"ab{$foo}cd\";\n        $bar = \"bar\"; // test if variable after T_CURLY_OPEN is intact\n    }\n}",
		"<?php\n\nclass Foo {\n    public function bar()\n    {\n        $foo = \"foo${width}foo\";\n        $bar = \"bar\";\n    }\n}",
		"<?php\nfunction foo()\n{\n    return \"foo\";\n}\n?>\n<script type=\"text/javascript\">\nfunction foo(bar) {\n    alert(bar);\n}\n</script>",
		"<?php\nclass Foo\n{\n    public function bar()\n    {\n        $script = <<<JAVASCRIPT\n<script type=\"text/javascript\">\nfunction foo(bar) {\n    alert(bar);\n}\n</script>\nJAVASCRIPT;\n\n        return $script;\n    }\n}",
		"<?php\n$name = Foo::class;\nfunction bar() {}",
		"<?php\nclass Foo {\n    public function aaa() {}\n    public $bbb;\n}",
	}
	r := Visibility()
	for i, in := range keep {
		if got := fix(t, r, in); got != in {
			t.Errorf("case %d changed:\n%s", i, got)
		}
	}
}
