// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	CompilerNotFoundId Id = iota + 1
	InvalidOverrideId
	ExecFailedId
	UnknownToolId
	ConfigLoadFailedId
	InvalidPreferenceId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue as styled terminal output. stylePath is a
// glamour style name ("dark", "light", "notty") or a path to a style file.
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.extLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range i.extLinks {
			md += "\n- <" + string(link) + ">"
		}
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	compilerNotFoundIssue = &Issue{
		id: CompilerNotFoundId,
		mdMsg: `
# No C compiler found!

autocc looked for a compiler but none of the known driver names exist
in the search directories.

## Search order
1. AUTOCC_CC / AUTOCC_CPP / AUTOCC_CXX, then ` + "`overrides`" + ` in the config file
2. CC / CPP / CXX naming clang or gcc
3. A clang or gcc next to the linker named by LD
4. clang, gcc and their target-prefixed forms in the config ` + "`search_paths`" + `, then PATH

## Things you can try:
- Install a compiler, for example:
~~~
$ apt install clang     # or gcc
~~~

- Point autocc at a compiler explicitly:
~~~
$ export AUTOCC_CC=/opt/llvm/bin/clang
~~~

- See every path autocc probes:
~~~
$ autocc doctor
~~~`,
		extLinks: []HttpLink{"https://clang.llvm.org/get_started.html", "https://gcc.gnu.org/install/"},
	}

	invalidOverrideIssue = &Issue{
		id: InvalidOverrideId,
		mdMsg: `
# Compiler override is not usable!

An explicit override is set but does not name an executable compiler.
autocc does not fall back to other compilers when an override is set.

## Things you can try:
- Check the path for typos and make sure the file is executable:
~~~
$ ls -l "$AUTOCC_CC"
~~~

- Unset the override to let autocc pick a compiler:
~~~
$ unset AUTOCC_CC AUTOCC_CPP AUTOCC_CXX
~~~

- Review the ` + "`overrides`" + ` section of your config:
~~~
$ autocc config show
~~~`,
	}

	execFailedIssue = &Issue{
		id: ExecFailedId,
		mdMsg: `
# Failed to start the compiler!

The compiler was found but the operating system refused to run it.

## Common causes:
- The file is a script whose interpreter is missing
- The binary was built for another architecture
- The filesystem is mounted noexec

## Things you can try:
- Run the compiler directly to see the system error:
~~~
$ autocc resolve cc
~~~`,
	}

	unknownToolIssue = &Issue{
		id: UnknownToolId,
		mdMsg: `
# Unknown tool name!

autocc decides what to run from the name it is invoked as. Supported
names are cc, c89, c99, c11, c17, cpp and c++, optionally with a target
prefix such as x86_64-linux-gnu-cc.

## Things you can try:
- Install autocc under one of the supported names:
~~~
$ ln -s /usr/local/bin/autocc /usr/bin/cc
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The autocc configuration file could not be read or does not match the
schema.

## Things you can try:
- Print the path autocc reads:
~~~
$ autocc config path
~~~

- Regenerate a default configuration:
~~~
$ autocc config init --force
~~~

- Example configuration:
~~~cue
toolchain: preferred: "llvm"
search_paths: ["/opt/llvm/bin"]
overrides: cxx: "/usr/bin/g++-13"
log: level: "warn"
~~~`,
	}

	invalidPreferenceIssue = &Issue{
		id: InvalidPreferenceId,
		mdMsg: `
# Invalid toolchain preference!

AUTOCC_TOOLCHAIN and ` + "`toolchain.preferred`" + ` accept only auto,
llvm or gnu.

## Things you can try:
~~~
$ export AUTOCC_TOOLCHAIN=gnu
~~~`,
	}

	issues = map[Id]*Issue{
		compilerNotFoundIssue.Id():  compilerNotFoundIssue,
		invalidOverrideIssue.Id():   invalidOverrideIssue,
		execFailedIssue.Id():        execFailedIssue,
		unknownToolIssue.Id():       unknownToolIssue,
		configLoadFailedIssue.Id():  configLoadFailedIssue,
		invalidPreferenceIssue.Id(): invalidPreferenceIssue,
	}
)

// Values returns every issue ordered by Id.
func Values() []*Issue {
	values := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		values = append(values, i)
	}
	slices.SortFunc(values, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
