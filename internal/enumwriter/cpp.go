package enumwriter

import "github.com/ginjaninja78/nodeidgen/internal/types"

// CPP is the name of the C++ target: OpcUa::ObjectID, the form consumed by
// the OPC UA server and client sources.
const CPP = "cpp"

const cppBanner = `
/// @author Alexander Rykovanov 2014
/// @email rykovanov.as@gmail.com
/// @brief Well known attributes identifiers.
/// @license GNU LGPL
///
/// Distributed under the GNU LGPL License
/// (See accompanying file LICENSE or copy at
/// http://www.gnu.org/licenses/lgpl.html)
///

///
/// DO NOT EDIT! File is autogenerated.
///


`

const cppOpen = `#pragma once

#include <stdint.h>

namespace OpcUa
{
  enum class ObjectID : uint32_t
  {
`

const cppClose = `  };
}

`

// CPPSyntax returns the C++ enum class syntax.
func CPPSyntax() Syntax {
	return Syntax{
		Name:      CPP,
		Banner:    cppBanner,
		Open:      cppOpen,
		Indent:    "    ",
		Assign:    " = ",
		Separator: ",",
		Newline:   "\n",
		Leading: []types.IdentifierRow{
			{Name: "Null", Value: "0"},
		},
		Spacer: "\n",
		// Not present in NodeIds.csv but referenced by the server address space.
		Trailing: []types.IdentifierRow{
			{Name: "Server_ServerCapabilities_ModellingRules", Value: "2996"},
			{Name: "EventTypesFolder", Value: "3048"},
			{Name: "Server_ServerCapabilities_SoftwareCertificates", Value: "3704"},
		},
		Close: cppClose,
	}
}

func init() {
	Register(CPPSyntax())
}
