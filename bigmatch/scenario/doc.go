// Package scenario runs assertion cases described in YAML files.
//
// A file lists cases, each naming a subject, a matcher method, its arguments
// and the expected outcome:
//
//	data:
//	  account:
//	    balance: 1000000000000000000000
//	cases:
//	  - name: balance is one thousand ether
//	    subject: {type: query, value: .account.balance}
//	    method: equal
//	    args: [{type: uint256, value: "1000000000000000000000"}]
//	    expect: pass
//
// Scalars decode to their natural Go type. Typed values use {type, value}
// with one of nil, bool, int, uint, float, string, bigint, decimal, apd,
// uint256, list, map or query. A query value is a jq expression evaluated
// against the file's data document.
package scenario
