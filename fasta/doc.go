/*
Package fasta writes sequences and pairwise alignments in FASTA format.

The format used is the one described by NCBI:
http://blast.ncbi.nlm.nih.gov/blastcgihelp.shtml

An aligned FASTA file is a FASTA file where every sequence has the same
length, '-' indicates a gap and the n'th residue of every sequence is the
n'th column of the alignment.
*/
package fasta
