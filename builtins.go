package main

import "fmt"

// builtins is the static builtin table. It is populated once by init and
// only read afterwards, so it is safe to share between concurrently running
// VMs; user assignments shadow entries per VM and never modify it.
var builtins map[string]builtin

// The operator table. Each entry lists its rules in match order; see rule
// for the signature alphabet. Operands are named a, b, c from deepest.
func init() {
	builtins = make(map[string]builtin, 64)
	def := func(name string, rules ...rule) {
		if _, dup := builtins[name]; dup {
			panic(fmt.Sprintf("duplicate builtin %q", name))
		}
		builtins[name] = &operator{name: name, rules: rules}
	}

	//// Stack manipulation

	def(".", on("x", dup))
	def(";", on("x", drop))
	def(`\`, on("xx", swap))
	def("@", on("xxx", rot))
	def("$",
		on("qb", sortBy), // sort a by the key computed by block b
		on("bb", sortBy),
		on("i", pick),    // copy the n-th value, 0 being the top
		on("q", sortSeq)) // sort

	//// Conversion and evaluation

	def("~",
		on("i", bitNot),      // bitwise not
		on("s", evalString),  // parse and run as code
		on("b", evalBlock),   // run
		on("a", spreadArray)) // push each element
	def("`", on("x", inspectOp))
	def("!", on("x", not))

	//// Arithmetic and sequence algebra

	def("+", on("xx", add)) // coerced: sum, concatenation, block join
	def("-", on("xx", sub)) // coerced: difference, sequence removal
	def("*",
		on("ii", mul),
		on("qi", repeat), // repeat a, b times
		on("iq", flip(repeat)),
		on("bi", times), // run a, b times
		on("ib", flip(times)),
		on("qb", fold), // reduce a with block b
		on("bq", flip(fold)),
		on("bb", flip(fold)), // reduce b's bytes with block a
		on("qq", join)) // join the list side by the separator side
	def("/",
		on("ii", div),
		on("qq", split), // split a around occurrences of b
		on("qi", chunk), // groups of b elements
		on("iq", flip(chunk)),
		on("bb", unfold), // a is the condition, b the body
		on("qb", each),
		on("bq", flip(each)))
	def("%",
		on("ii", mod),
		on("qq", splitClean), // split, dropping empty pieces
		on("qi", everyNth),
		on("iq", flip(everyNth)),
		on("qb", mapSeq),
		on("bq", flip(mapSeq)))
	def("|", on("ii", bitOr), on("xx", setUnion))
	def("&", on("ii", bitAnd), on("xx", setIntersect))
	def("^", on("ii", bitXor), on("xx", setSymDiff))

	//// Comparison, indexing and slicing

	def("<",
		on("ii", less),
		on("qi", sliceHead),
		on("iq", flip(sliceHead)),
		on("bi", sliceHead),
		on("ib", flip(sliceHead)),
		on("xx", less))
	def(">",
		on("ii", greater),
		on("qi", sliceTail),
		on("iq", flip(sliceTail)),
		on("bi", sliceTail),
		on("ib", flip(sliceTail)),
		on("xx", greater))
	def("=",
		on("ii", equal),
		on("qi", index),
		on("iq", flip(index)),
		on("bi", index),
		on("ib", flip(index)),
		on("xx", equal))
	def(",",
		on("qb", selectSeq), // elements of a for which b is true
		on("i", count),      // [0 1 ... n-1]
		on("q", length),
		on("b", length))
	def("?",
		on("ii", power),
		on("qb", find), // first element of a for which b is true
		on("bq", flip(find)),
		on("ss", substringIndex),
		on("qx", indexOf),
		on("xq", flip(indexOf)))
	def("(", on("i", dec), on("q", uncons))
	def(")", on("i", inc), on("q", unsnoc))

	//// Named builtins

	def("abs", on("i", abs))
	def("base", on("ii", toBase), on("qi", fromBase))
	def("zip", on("a", zip))
	def("rand", on("i", random))
	def("print", on("x", printValue))

	//// Control flow

	def("if", on("xxx", ifElse))
	def("do", on("b", doLoop))
	def("while", on("bb", whileLoop))
	def("until", on("bb", untilLoop))

	for name, src := range prelude {
		if _, dup := builtins[name]; dup {
			panic(fmt.Sprintf("duplicate builtin %q", name))
		}
		builtins[name] = preludeValue{mustPrelude(name, src)}
	}
}
