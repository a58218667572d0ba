// Package changes parses the changes.ini authoring format into a patch
// description the install package can run.
//
// The format is section-driven. List sections enumerate resources, and
// each listed resource points at further sections describing the
// instructions against it:
//
//	[Settings]
//	WindowCaption=My Mod
//	LogLevel=3
//
//	[TLKList]
//	StrRef0=0
//
//	[InstallList]
//	install_folder0=Override
//	[install_folder0]
//	File0=extra.tga
//	Replace0=icon.tga
//
//	[2DAList]
//	Table0=appearance.2da
//	[appearance.2da]
//	AddRow0=appearance_add
//	[appearance_add]
//	ExclusiveColumn=label
//	label=npc_new
//	race=high()
//	2DAMEMORY1=RowIndex
//
//	[GFFList]
//	File0=npc.utc
//	[npc.utc]
//	Appearance_Type=2DAMEMORY1
//	AddField0=npc_class
//
//	[CompileList]
//	File0=k_script.nss
//
//	[SSFList]
//	File0=npc.ssf
//	[npc.ssf]
//	Battlecry 1=StrRef0
//
// Values resolve through the token syntax shared by every instruction
// kind: 2DAMEMORY<n> and StrRef<n> read token memory, high(column) takes
// a column's high-water mark, RowIndex and ListIndex name the position
// the enclosing instruction is producing, expr(...) computes, and
// anything else is a literal. Instructions run in declaration order
// within their section.
package changes
