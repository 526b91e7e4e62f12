/*
Command sistat checks a starindex output file and prints statistics on it.

  Usage: sistat [flags] <file>
        --hist         print a histogram of magnitudes
    -v, --version      display version

Only the binary output style can be read.  The file is decoded and the
index checked the same way starindex checks it before writing: the heads
must be the running sum of the counts, the counts must add to the number of
stars, and each star must fall in the cell whose range holds it.  A file
that fails any check is reported and sistat exits with a non-zero status.

For a good file sistat prints the build settings recorded in it, then

- the number of stars and the mean and standard deviation of their
magnitudes, and the position of the brightest star,

- the number of grid cells and how many hold at least one star,

- the mean and standard deviation of stars per occupied cell, and the most
stars in any cell with the position of that cell's center.

Positions are printed in sexagesimal, right ascension in hours and
declination in degrees.
*/
package main
