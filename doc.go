/*
Package parsetab is a generator for table-driven parsers.

Given a context-free grammar, parsetab computes FIRST and FOLLOW sets and
constructs two kinds of deterministic parsers for it: a predictive LL(1) parser
and a canonical LR(1) shift-reduce parser. Package structure is as follows:

■ grammar: Package grammar holds the grammar model, a grammar builder, a loader
for the textual grammar format, and the FIRST/FOLLOW analysis.

■ ll1: Package ll1 constructs predictive parse tables and contains the
predictive parse driver.

■ lr: Package lr constructs the canonical collection of LR(1) item sets and
derives ACTION and GOTO tables from it. Sub-package clr contains the
shift-reduce parse driver.

■ scanner: Package scanner defines the tokenizer interface used by both
parse drivers, together with a couple of simple tokenizers.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parsetab
