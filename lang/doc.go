// Package lang implements a small embeddable template language.
//
// A document is literal text interleaved with tags delimited by "{$" and
// "$}". There are three tags:
//
//	{$ FOR i 1 10 2 $} ... {$ END $}   loop from 1 to 10 (inclusive) by 2
//	{$= i "x" @dup * $}                 evaluate a postfix expression
//	{$ END $}                           close the innermost FOR
//
// FOR and END are case-insensitive. A FOR tag takes a variable followed by
// a start, an end and an optional step; each bound is a variable, a string
// or a number.
//
// # Text
//
// Outside tags, "\{" and "\\" escape a brace and a backslash. Any other
// backslash is literal.
//
// # Tag Elements
//
//	i, total_2      variable
//	"a \"b\"\n"     string; escapes are \" \\ \n \r \t
//	42, -7          integer
//	3.5, 1e3, -2.0  decimal
//	+ - * / ^       operator; ^ is reserved and fails at run time
//	@sin            function
//
// # Execution
//
// An echo tag pushes operands onto a private stack, applies operators and
// functions to the values on top, and finally writes every remaining
// value from bottom to top. Variables resolve to the innermost loop
// variable of that name, falling back to the request parameters of the
// [RequestContext].
//
// Arithmetic follows [Apply]: text is converted to a number when it looks
// like one, integers stay integers and anything involving a decimal
// produces a decimal.
//
// # Example
//
//	doc, err := lang.ParseString(ctx, `a {$FOR i 1 3$}{$=i$}{$END$}`)
//	if err != nil {
//		return err
//	}
//
//	var buf strings.Builder
//	err = lang.Execute(ctx, doc, lang.NewRequest(&buf)) // buf: "a 123"
//
// # Errors
//
// Every failure is an [*Error]. Use errors.Is with [ErrLexical],
// [ErrSyntax] or [ErrRuntime] to test the category, or with a specific
// sentinel such as [ErrDivisionByZero].
package lang
