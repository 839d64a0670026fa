// Package ordmap implement ordered maps of integer keys and
// necessary tools and libraries.
//
// api:
//
// Interfaces to access ordered maps, traversal orders and
// error values.
//
// lib:
//
// Convinience functions that can be used by other packages. Package shall
// not import packages other than golang's standard packages.
//
// llrb:
//
// A version of Left Leaning Red Black tree for sorting and retrieving
// {key,value} entries. Index resides entirely in memory.
//
// dict:
//
// Reference ordered map, used to cross check llrb.
//
// tools/llrb:
//
// Command line tool to load, delete, validate and dump an llrb tree.
package ordmap
