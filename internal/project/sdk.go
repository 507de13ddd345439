package project

type sdkStrategy struct{}

func (sdkStrategy) header(w *writer, doc *document) {
	w.line(`<Project ToolsVersion="Current" Sdk="Microsoft.NET.Sdk">`)
	w.line(`  <PropertyGroup>`)
	w.line(`    <EnableDefaultItems>false</EnableDefaultItems>`)
	w.line(`    <AppendTargetFrameworkToOutputPath>false</AppendTargetFrameworkToOutputPath>`)
	w.line(`    <LangVersion>`, Escape(doc.langVersion), `</LangVersion>`)
	w.line(`    <Configurations>Debug;Release</Configurations>`)
	w.line(`    <Configuration Condition=" '$(Configuration)' == '' ">Debug</Configuration>`)
	w.line(`    <Platform Condition=" '$(Platform)' == '' ">AnyCPU</Platform>`)
	w.line(`    <RootNamespace>`, Escape(doc.rootNamespace), `</RootNamespace>`)
	w.line(`    <OutputType>Library</OutputType>`)
	w.line(`    <AppDesignerFolder>Properties</AppDesignerFolder>`)
	w.line(`    <AssemblyName>`, Escape(doc.name), `</AssemblyName>`)
	w.line(`    <TargetFramework>net471</TargetFramework>`)
	w.line(`    <BaseDirectory>.</BaseDirectory>`)
	w.line(`  </PropertyGroup>`)
	writeConfigurations(w, doc)
	writeFlavoring(w, doc, false)
	writeAnalyzers(w, doc)
}

func (sdkStrategy) projectReference(w *writer, ref projectReference) {
	w.line(`    <ProjectReference Include="`, Escape(ref.name), Extension, `" />`)
}

func (sdkStrategy) footer(w *writer) {
	w.line(`</Project>`)
}
