package logger

// Most log messages are given a message ID that "--log-override:ID=LEVEL"
// can use to raise, lower, or silence that one category independently of
// the global log level. Recoverable-gap messages carry one so a caller who
// wants a clean build to fail loudly on them can promote them to error;
// host I/O failures carry one so a caller running unattended can demote a
// single flaky category to a warning without silencing everything else.
// Some internal log messages do not get a message ID because they are part
// of verbose and/or internal debugging output; these use "MsgID_None".
type MsgID = uint8

const (
	MsgID_None MsgID = iota

	// Recoverable semantic gaps: the affected subtree is reduced to
	// comment-only emission and a diagnostic is appended instead of failing
	// the whole file.
	MsgID_Lowering_MethodWithoutBody
	MsgID_Lowering_DecoratorOnNonDecoratableMember
	MsgID_Lowering_UnsupportedForOfTarget
	MsgID_Lowering_UnresolvedAlias

	// Suspicious-but-legal constructs the printer can flag on its own,
	// without needing a type checker
	MsgID_JS_DuplicateCase
	MsgID_JS_DuplicateObjectKey
	MsgID_JS_EqualsNaN

	// Module framing
	MsgID_Module_AmbiguousExportStar
	MsgID_Module_UnsupportedEnvelopeOption

	// Source maps
	MsgID_SourceMap_InvalidSourceMappings
	MsgID_SourceMap_MissingSourceMap

	// Host I/O failures, surfaced with no source location
	MsgID_Host_IOError

	// MsgID_END is a sentinel one past the last real ID, not a real
	// category itself — it exists so callers (and tests) can loop
	// "for id := MsgID_None; id <= MsgID_END; id++" without hardcoding
	// the current count.
	MsgID_END
)

var msgIDToStringTable = map[MsgID]string{
	MsgID_Lowering_MethodWithoutBody:              "lowering-method-without-body",
	MsgID_Lowering_DecoratorOnNonDecoratableMember: "lowering-decorator-on-non-decoratable-member",
	MsgID_Lowering_UnsupportedForOfTarget:          "lowering-unsupported-for-of-target",
	MsgID_Lowering_UnresolvedAlias:                 "lowering-unresolved-alias",
	MsgID_JS_DuplicateCase:                         "js-duplicate-case",
	MsgID_JS_DuplicateObjectKey:                    "js-duplicate-object-key",
	MsgID_JS_EqualsNaN:                             "js-equals-nan",
	MsgID_Module_AmbiguousExportStar:               "module-ambiguous-export-star",
	MsgID_Module_UnsupportedEnvelopeOption:         "module-unsupported-envelope-option",
	MsgID_SourceMap_InvalidSourceMappings:          "source-map-invalid-source-mappings",
	MsgID_SourceMap_MissingSourceMap:               "source-map-missing-source-map",
	MsgID_Host_IOError:                             "host-io-error",
}

var stringToMsgIDTable = func() map[string]MsgID {
	table := make(map[string]MsgID, len(msgIDToStringTable))
	for id, str := range msgIDToStringTable {
		table[str] = id
	}
	return table
}()

// MsgIDToString returns the "--log-override" name for id, or "" for
// MsgID_None/MsgID_END, which are not overridable categories.
func MsgIDToString(id MsgID) string {
	return msgIDToStringTable[id]
}

// StringToMsgIDs records level as an override for the message category
// named str into overrides. str must be exactly one of MsgIDToString's
// names; unknown names are silently ignored, matching command-line flag
// parsing elsewhere in this repository that reports unknown flags itself
// rather than making every callee re-validate them.
func StringToMsgIDs(str string, level LogLevel, overrides map[MsgID]LogLevel) {
	if id, ok := stringToMsgIDTable[str]; ok {
		overrides[id] = level
	}
}
