// Package project renders one assembly into a .csproj document.
//
// Rendering is a pure function of its Input: the same assembly and settings
// always produce the same bytes, and nothing here returns an error. Paths that
// fail to normalize pass through unchanged.
//
// CRITICAL PATTERNS:
//   - All emitted text is XML-escaped (& ' < > ")
//   - Lines end in CRLF on every host OS
//   - Item lists are sorted ordinally and deduplicated after normalization
//
// Two strategies share the item rendering and differ in header, project
// reference form and footer:
//   - StyleLegacy: ToolsVersion 4.0 with ProjectGuid and the CSharp targets import
//   - StyleSDK: Sdk="Microsoft.NET.Sdk" with short ProjectReference entries
package project
