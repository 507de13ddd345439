package project

type legacyStrategy struct{}

func (legacyStrategy) header(w *writer, doc *document) {
	w.line(`<?xml version="1.0" encoding="utf-8"?>`)
	w.line(`<Project ToolsVersion="4.0" DefaultTargets="Build" xmlns="http://schemas.microsoft.com/developer/msbuild/2003">`)
	w.line(`  <!-- Generated file, do not modify, your changes will be overwritten (use AssetPostprocessor.OnGeneratedCSProject) -->`)
	w.line(`  <PropertyGroup>`)
	w.line(`    <LangVersion>`, Escape(doc.langVersion), `</LangVersion>`)
	w.line(`  </PropertyGroup>`)
	w.line(`  <PropertyGroup>`)
	w.line(`    <Configuration Condition=" '$(Configuration)' == '' ">Debug</Configuration>`)
	w.line(`    <Platform Condition=" '$(Platform)' == '' ">AnyCPU</Platform>`)
	w.line(`    <ProductVersion>10.0.20506</ProductVersion>`)
	w.line(`    <SchemaVersion>2.0</SchemaVersion>`)
	w.line(`    <RootNamespace>`, Escape(doc.rootNamespace), `</RootNamespace>`)
	w.line(`    <ProjectGuid>{`, doc.guid, `}</ProjectGuid>`)
	w.line(`    <OutputType>Library</OutputType>`)
	w.line(`    <AppDesignerFolder>Properties</AppDesignerFolder>`)
	w.line(`    <AssemblyName>`, Escape(doc.name), `</AssemblyName>`)
	w.line(`    <TargetFrameworkVersion>v4.7.1</TargetFrameworkVersion>`)
	w.line(`    <FileAlignment>512</FileAlignment>`)
	w.line(`    <BaseDirectory>.</BaseDirectory>`)
	w.line(`  </PropertyGroup>`)
	writeConfigurations(w, doc)
	w.line(`  <PropertyGroup>`)
	w.line(`    <NoConfig>true</NoConfig>`)
	w.line(`    <NoStdLib>true</NoStdLib>`)
	w.line(`    <AddAdditionalExplicitAssemblyReferences>false</AddAdditionalExplicitAssemblyReferences>`)
	w.line(`    <ImplicitlyExpandNETStandardFacades>false</ImplicitlyExpandNETStandardFacades>`)
	w.line(`    <ImplicitlyExpandDesignTimeFacades>false</ImplicitlyExpandDesignTimeFacades>`)
	w.line(`  </PropertyGroup>`)
	writeFlavoring(w, doc, true)
	writeAnalyzers(w, doc)
}

func (legacyStrategy) projectReference(w *writer, ref projectReference) {
	w.line(`    <ProjectReference Include="`, Escape(ref.name), Extension, `">`)
	w.line(`      <Project>{`, ref.guid, `}</Project>`)
	w.line(`      <Name>`, Escape(ref.name), `</Name>`)
	w.line(`    </ProjectReference>`)
}

func (legacyStrategy) footer(w *writer) {
	w.line(`  <Import Project="$(MSBuildToolsPath)\Microsoft.CSharp.targets" />`)
	w.line(`  <Target Name="GenerateTargetFrameworkMonikerAttribute" />`)
	w.line(`  <!-- To modify your build process, add your task inside one of the targets below and uncomment it.`)
	w.line(`       Other similar extension points exist, see Microsoft.Common.targets.`)
	w.line(`  <Target Name="BeforeBuild">`)
	w.line(`  </Target>`)
	w.line(`  <Target Name="AfterBuild">`)
	w.line(`  </Target>`)
	w.line(`  -->`)
	w.line(`</Project>`)
}
