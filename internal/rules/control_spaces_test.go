package rules

import "testing"

func TestControlSpaces(t *testing.T) {
	runCases(t, ControlSpaces(), []fixCase{
		{"try", "try{", "try {"},
		{"do while", "do { ... }while($test);", "do { ... } while ($test);"},
		{"if", "if($test){", "if ($test) {"},
		{"if inner spaces", "if( $test ){", "if ($test) {"},
		{"if wide", "if  (   $test ){", "if ($test) {"},
		{"nested parens", "if  (($test1 || $test2) && $test3){", "if (($test1 || $test2) && $test3) {"},
		{"nested parens tight", "if(($test1 || $test2) && $test3){", "if (($test1 || $test2) && $test3) {"},
		{"method call kept", "if ($this->tesT ($test)) {", "if ($this->tesT ($test)) {"},
		{"else", "}else{", "} else {"},
		{"elseif", "}elseif($test){", "} elseif ($test) {"},
		{"closure use", ")use($test){", ") use ($test) {"},
		{"catch finally", "try{}catch(E $e){}finally{}", "try {} catch (E $e) {} finally {}"},
		{"foreach", "foreach($a as $b){", "foreach ($a as $b) {"},
		{"alternative syntax", "if($a):", "if ($a):"},
		{"else if", "}else if($a){", "} else if ($a) {"},
		{"brace on next line kept", "if ($a)\n{", "if ($a)\n{"},
		{"comment kept", "if ($a) /* x */ {", "if ($a) /* x */ {"},
		{"closing paren keeps indentation",
			"if(true === true\n            && true === true\n        )    {",
			"if (true === true\n            && true === true\n        ) {"},
	})
}
